package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

var _ out.CachePort = (*LRUCacheAdapter)(nil)

type doctorsListCache struct {
	doctors   []domain.Doctor
	timestamp time.Time
	ttl       time.Duration
}

// Нулевой ttl — без истечения, как у expirable.LRU.
func (l *doctorsListCache) expired(now time.Time) bool {
	return l.ttl > 0 && now.Sub(l.timestamp) > l.ttl
}

type LRUCacheAdapter struct {
	doctorCache *expirable.LRU[string, domain.Doctor]
	listCache   *doctorsListCache
	mu          sync.RWMutex
	now         func() time.Time
	logger      out.LoggerPort
}

func NewLRUCacheAdapter(size int, ttl time.Duration, logger out.LoggerPort) (*LRUCacheAdapter, error) {
	if size <= 0 {
		logger.Error("cache.init.failed", out.LogFields{
			"size": size,
		})
		return nil, fmt.Errorf("cache.init: size must be positive, got %d", size)
	}

	return &LRUCacheAdapter{
		doctorCache: expirable.NewLRU[string, domain.Doctor](size, nil, ttl),
		listCache:   &doctorsListCache{ttl: ttl},
		now:         time.Now,
		logger:      logger.WithModule("LRUCacheAdapter"),
	}, nil
}

func (c *LRUCacheAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.listCache.doctors == nil || c.listCache.expired(c.now()) {
		c.logger.Debug("cache.doctors.get.miss", out.LogFields{})
		return nil, false
	}

	c.logger.Debug("cache.doctors.get.hit", out.LogFields{
		"count": len(c.listCache.doctors),
	})
	return append([]domain.Doctor(nil), c.listCache.doctors...), true
}

func (c *LRUCacheAdapter) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listCache.doctors = append([]domain.Doctor{}, doctors...)
	c.listCache.timestamp = c.now()
	// Список заодно прогревает карточки врачей
	for _, d := range doctors {
		c.doctorCache.Add(d.ID.String(), d)
	}
}

func (c *LRUCacheAdapter) GetDoctor(ctx context.Context, doctorID domain.DoctorID) (*domain.Doctor, bool) {
	doctor, exists := c.doctorCache.Get(doctorID.String())
	if !exists {
		c.logger.Debug("cache.doctor.get.miss", out.LogFields{
			"doctorId": doctorID,
		})
		return nil, false
	}

	c.logger.Debug("cache.doctor.get.hit", out.LogFields{
		"doctorId": doctorID,
	})
	return &doctor, true
}

func (c *LRUCacheAdapter) StoreDoctor(ctx context.Context, doctor domain.Doctor) {
	c.doctorCache.Add(doctor.ID.String(), doctor)
}

func (c *LRUCacheAdapter) InvalidateDoctor(ctx context.Context, doctorID domain.DoctorID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctorCache.Remove(doctorID.String())
	// Врач мог появиться, пропасть или поменять имя — список тоже устарел
	c.listCache.doctors = nil
	c.listCache.timestamp = time.Time{}
}

func (c *LRUCacheAdapter) InvalidateAllDoctors(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctorCache.Purge()
	c.listCache.doctors = nil
	c.listCache.timestamp = time.Time{}
}
