package cache

import (
	"github.com/redis/go-redis/v9"
	"github.com/suchimauz/clinic-booking-controller/internal/config"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

// NewCacheAdapter выбирает хранилище справочника врачей по конфигу.
// При выключенном кэше возвращает nil: вызывающий работает без кэша.
func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (out.CachePort, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisCacheAdapter(client, cfg.Cache.TTL, logger), nil
	default:
		adapter, err := NewLRUCacheAdapter(cfg.Cache.Size, cfg.Cache.TTL, logger)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	}
}
