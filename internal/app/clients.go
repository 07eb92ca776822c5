package app

import (
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/marketplace-backend/internal/clients/redis"
	"github.com/yungbote/marketplace-backend/internal/platform/idempotency"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
	"github.com/yungbote/marketplace-backend/internal/realtime"
)

type Clients struct {
	Redis       *goredis.Client
	Events      realtime.Bus
	Idempotency idempotency.Store
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	if strings.TrimSpace(cfg.RedisAddr) == "" {
		log.Info("REDIS_ADDR not set, using in-process event bus and idempotency store")
		return Clients{
			Events:      realtime.NewMemoryBus(),
			Idempotency: idempotency.NewMemoryStore(cfg.IdempotencyTTL),
		}, nil
	}

	rdb, err := redis.NewClient(log, cfg.RedisAddr)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis client: %w", err)
	}
	bus, err := redis.NewEventBus(log, rdb, cfg.RedisChannel)
	if err != nil {
		_ = rdb.Close()
		return Clients{}, fmt.Errorf("init redis event bus: %w", err)
	}
	return Clients{
		Redis:       rdb,
		Events:      bus,
		Idempotency: idempotency.NewRedisStore(rdb, cfg.IdempotencyTTL),
	}, nil
}

func (c Clients) Close() {
	if c.Events != nil {
		_ = c.Events.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
