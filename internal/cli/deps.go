package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"quiz-trainer/internal/bank"
	"quiz-trainer/internal/config"
	"quiz-trainer/internal/domain"
	"quiz-trainer/internal/history"
	filestore "quiz-trainer/internal/infra/file"
	"quiz-trainer/internal/infra/memory"
	pgbank "quiz-trainer/internal/infra/postgres"
	redisinfra "quiz-trainer/internal/infra/redis"
	"quiz-trainer/internal/quiz"
)

// deps wires the storage and bank plumbing chosen by configuration: banks
// come from Postgres when a URL is configured and from JSON files otherwise;
// history lives in Redis when an address is configured and on disk otherwise.
type deps struct {
	banks    quiz.BankRepository
	bankList []domain.QuestionBank
	history  *history.Store

	pool        *pgxpool.Pool
	redisClient *redis.Client
}

func buildDeps(ctx context.Context, cfg config.Config) (*deps, error) {
	d := &deps{bankList: cfg.Banks.List}

	if cfg.Redis.Addr != "" {
		d.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var loader bank.Loader = bank.NewFileLoader(cfg.Banks.Dir, cfg.Banks.List)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		d.pool = pool
		loader = pgbank.NewBankLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Banks.TTL, 10*time.Minute)
	if d.redisClient != nil {
		d.banks = redisinfra.NewBankRepository(d.redisClient, loader, bankTTL)
	} else {
		d.banks = memory.NewBankRepository(loader, bankTTL)
	}

	if d.redisClient != nil {
		// History must not expire; the TTL only applies to transient blobs.
		d.history = history.NewStore(redisinfra.NewBlobStore(d.redisClient, 0))
	} else {
		store, err := filestore.NewBlobStore(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		d.history = history.NewStore(store)
	}
	return d, nil
}

func (d *deps) close() {
	if d.pool != nil {
		d.pool.Close()
	}
	if d.redisClient != nil {
		_ = d.redisClient.Close()
	}
}
