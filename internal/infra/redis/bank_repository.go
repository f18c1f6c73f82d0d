// Package redis holds the Redis-backed infrastructure: blob store and cached
// bank repository.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-trainer/internal/bank"
	"quiz-trainer/internal/domain"
)

// BankRepository caches bank JSON in Redis under bank:{name} and falls back
// to a loader on cache miss.
type BankRepository struct {
	client *redis.Client
	loader bank.Loader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader bank.Loader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, name string) (domain.Bank, error) {
	key := r.key(name)

	if cached, err := r.client.Get(ctx, key).Result(); err == nil {
		if loaded, ok := decodeBank(cached); ok {
			return loaded, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Redis trouble degrades to the loader; the cache is an optimization.
		return r.loader.LoadBank(ctx, name)
	}

	result, err, _ := r.sf.Do(name, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if cached, err := r.client.Get(ctx, key).Result(); err == nil {
			if loaded, ok := decodeBank(cached); ok {
				return loaded, nil
			}
		}

		loaded, err := r.loader.LoadBank(ctx, name)
		if err != nil {
			return domain.Bank{}, err
		}

		if data, err := json.Marshal(loaded); err == nil {
			_ = r.client.Set(ctx, key, string(data), r.ttlWithJitter()).Err()
		}
		return loaded, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (r *BankRepository) key(name string) string {
	return "trainer:bank:" + name
}

// decodeBank treats an entry with no questions as a miss. Empty banks are
// never served from cache; they go back to the loader each time, which keeps
// a half-written cache entry from shadowing real bank content.
func decodeBank(raw string) (domain.Bank, bool) {
	var loaded domain.Bank
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		return domain.Bank{}, false
	}
	return loaded, len(loaded.Questions) > 0
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
