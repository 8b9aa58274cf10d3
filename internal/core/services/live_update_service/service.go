package live_update_service

import (
	"context"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/in"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

var _ in.LiveUpdateUseCase = (*Service)(nil)

// Service применяет изменения из очереди: чистит кэш врачей и будит календари сессий.
type Service struct {
	cache    out.CachePort
	sessions out.SessionBroadcastPort
	logger   out.LoggerPort
}

// NewLiveUpdateService — cache может быть nil, если кэш выключен.
func NewLiveUpdateService(cache out.CachePort, sessions out.SessionBroadcastPort, logger out.LoggerPort) *Service {
	return &Service{
		cache:    cache,
		sessions: sessions,
		logger:   logger.WithModule("LiveUpdateService"),
	}
}

func (s *Service) SlotsChanged(ctx context.Context, doctorID domain.DoctorID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	refreshed := s.sessions.RefreshCalendars(doctorID)
	s.logger.Info("live_update.slots_changed", out.LogFields{
		"doctorId":  doctorID.String(),
		"refreshed": refreshed,
	})
	return nil
}

func (s *Service) DoctorChanged(ctx context.Context, doctorID domain.DoctorID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.InvalidateDoctor(ctx, doctorID)
	}

	refreshed := s.sessions.RefreshCalendars(doctorID)
	s.logger.Info("live_update.doctor_changed", out.LogFields{
		"doctorId":  doctorID.String(),
		"refreshed": refreshed,
	})
	return nil
}

func (s *Service) AllChanged(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.InvalidateAllDoctors(ctx)
	}

	refreshed := s.sessions.RefreshAllCalendars()
	s.logger.Info("live_update.all_changed", out.LogFields{
		"refreshed": refreshed,
	})
	return nil
}
