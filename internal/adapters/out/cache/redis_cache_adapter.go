package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

const (
	redisDoctorsKey      = "booking:doctors"
	redisDoctorKeyPrefix = "booking:doctor:"
)

var _ out.CachePort = (*RedisCacheAdapter)(nil)

// RedisCacheAdapter — общий для нескольких экземпляров контроллера кэш справочника врачей.
// Ошибки Redis не пробрасываются: промах кэша, запрос уходит в API.
type RedisCacheAdapter struct {
	client *redis.Client
	ttl    time.Duration
	logger out.LoggerPort
}

func NewRedisCacheAdapter(client *redis.Client, ttl time.Duration, logger out.LoggerPort) *RedisCacheAdapter {
	return &RedisCacheAdapter{
		client: client,
		ttl:    ttl,
		logger: logger.WithModule("RedisCacheAdapter"),
	}
}

func doctorKey(doctorID domain.DoctorID) string {
	return redisDoctorKeyPrefix + doctorID.String()
}

func (c *RedisCacheAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	var doctors []domain.Doctor
	if !c.get(ctx, redisDoctorsKey, &doctors) || doctors == nil {
		return nil, false
	}
	return doctors, true
}

func (c *RedisCacheAdapter) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {
	if doctors == nil {
		doctors = []domain.Doctor{}
	}
	c.set(ctx, redisDoctorsKey, doctors)
	for _, d := range doctors {
		c.set(ctx, doctorKey(d.ID), d)
	}
}

func (c *RedisCacheAdapter) GetDoctor(ctx context.Context, doctorID domain.DoctorID) (*domain.Doctor, bool) {
	var doctor domain.Doctor
	if !c.get(ctx, doctorKey(doctorID), &doctor) {
		return nil, false
	}
	return &doctor, true
}

func (c *RedisCacheAdapter) StoreDoctor(ctx context.Context, doctor domain.Doctor) {
	c.set(ctx, doctorKey(doctor.ID), doctor)
}

func (c *RedisCacheAdapter) InvalidateDoctor(ctx context.Context, doctorID domain.DoctorID) {
	if err := c.client.Del(ctx, doctorKey(doctorID), redisDoctorsKey).Err(); err != nil {
		c.logger.Error("cache.redis.invalidate_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) InvalidateAllDoctors(ctx context.Context) {
	keys := []string{redisDoctorsKey}
	iter := c.client.Scan(ctx, 0, redisDoctorKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Error("cache.redis.scan_failed", out.LogFields{
			"error": err.Error(),
		})
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache.redis.invalidate_all_failed", out.LogFields{
			"keys":  len(keys),
			"error": err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) get(ctx context.Context, key string, v interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("cache.redis.get.miss", out.LogFields{
			"key": key,
		})
		return false
	}
	if err != nil {
		c.logger.Error("cache.redis.get_failed", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.logger.Error("cache.redis.decode_failed", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	c.logger.Debug("cache.redis.get.hit", out.LogFields{
		"key": key,
	})
	return true
}

func (c *RedisCacheAdapter) set(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("cache.redis.encode_failed", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Error("cache.redis.set_failed", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
	}
}
