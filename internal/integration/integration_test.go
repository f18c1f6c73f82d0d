package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"quiz-trainer/internal/domain"
	"quiz-trainer/internal/history"
	pgloader "quiz-trainer/internal/infra/postgres"
	pgmigrations "quiz-trainer/internal/infra/postgres/migrations"
	infraredis "quiz-trainer/internal/infra/redis"
	"quiz-trainer/internal/quiz"
)

func TestQuizRunEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBank(t, ctx, pgURL, "azure-ai", "Azure AI Fundamentals", sampleQuestions())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewBankLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	banks := infraredis.NewBankRepository(redisClient, loader, 5*time.Minute)
	store := history.NewStore(infraredis.NewBlobStore(redisClient, 0))

	session := quiz.NewSession(banks, store)
	if err := session.Start(ctx, "azure-ai"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// First question right, second wrong.
	session.SelectOption(1)
	if !session.Advance(ctx) {
		t.Fatalf("advance 1 blocked")
	}
	session.SelectOption(0)
	if !session.Advance(ctx) {
		t.Fatalf("advance 2 blocked")
	}

	result, ok := session.Result()
	if !ok {
		t.Fatalf("expected a result")
	}
	if result.TotalQuestions != 2 || result.CorrectAnswers != 1 || result.Score != 50 {
		t.Fatalf("unexpected result %+v", result)
	}

	attempt, ok := session.Attempt()
	if !ok {
		t.Fatalf("attempt should have been persisted to redis")
	}
	stored, err := store.GetByID(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("stored attempt: %v", err)
	}
	if stored.BankName != "azure-ai" || stored.Score != 50 {
		t.Fatalf("unexpected stored attempt %+v", stored)
	}

	h := store.Load(ctx)
	if h.TotalAttempts != 1 || h.FavoriteBank != "azure-ai" {
		t.Fatalf("unexpected history %+v", h)
	}

	// Second read must come from the redis cache, not postgres.
	if _, err := banks.GetBank(ctx, "azure-ai"); err != nil {
		t.Fatalf("cached get: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedBank(t *testing.T, ctx context.Context, dsn, name, displayName string, questions []domain.Question) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	data, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO banks (name, display_name, data) VALUES (?, ?, ?::jsonb) ON CONFLICT (name) DO UPDATE SET data=EXCLUDED.data`,
		name, displayName, string(data)); err != nil {
		t.Fatalf("insert bank: %v", err)
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Question: "What kind of task is predicting a house price?", Options: []string{"Classification", "Regression", "Clustering"}, CorrectAnswer: 1},
		{ID: 2, Question: "Which service reads text from images?", Options: []string{"Speech", "Vision", "Translator"}, CorrectAnswer: 1},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
