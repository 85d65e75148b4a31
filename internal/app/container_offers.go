package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"service-dispatch/internal/config"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/offers"
	"service-dispatch/internal/service/dispatch"
)

var newRedisClient = func(cfg config.Redis) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// offerStore держит выбранную реализацию и её клиент, чтобы раннер мог его закрыть.
type offerStore struct {
	dispatch.OfferStore
	client redis.UniversalClient
}

func (s *offerStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// newOfferStoreBackend picks Redis when REDIS_ADDR is set and falls back to the in-process store.
func newOfferStoreBackend(ctx context.Context, cfg *config.Config, logger logx.Logger) (*offerStore, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR is empty, offers are kept in memory")
		return &offerStore{OfferStore: offers.NewMemoryStore(nil)}, nil
	}

	client := newRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("offer store connected", logx.String("redis_addr", cfg.Redis.Addr))
	return &offerStore{OfferStore: offers.NewRedisStore(client), client: client}, nil
}

func newOfferStore(s *offerStore) dispatch.OfferStore {
	return s.OfferStore
}
