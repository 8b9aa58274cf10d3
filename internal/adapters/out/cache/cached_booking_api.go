package cache

import (
	"context"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

var _ out.BookingAPIPort = (*CachedBookingAPI)(nil)

// CachedBookingAPI отдает справочник врачей из кэша. Слоты и запись всегда идут в API.
type CachedBookingAPI struct {
	next   out.BookingAPIPort
	cache  out.CachePort
	logger out.LoggerPort
}

func NewCachedBookingAPI(next out.BookingAPIPort, cache out.CachePort, logger out.LoggerPort) *CachedBookingAPI {
	return &CachedBookingAPI{
		next:   next,
		cache:  cache,
		logger: logger.WithModule("CachedBookingAPI"),
	}
}

func (a *CachedBookingAPI) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	if doctors, ok := a.cache.GetDoctors(ctx); ok {
		return doctors, nil
	}

	doctors, err := a.next.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	a.cache.StoreDoctors(ctx, doctors)
	return doctors, nil
}

func (a *CachedBookingAPI) GetDoctor(ctx context.Context, doctorID domain.DoctorID) (*domain.Doctor, error) {
	if doctor, ok := a.cache.GetDoctor(ctx, doctorID); ok {
		return doctor, nil
	}

	doctor, err := a.next.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	a.cache.StoreDoctor(ctx, *doctor)
	return doctor, nil
}

func (a *CachedBookingAPI) ListSlots(ctx context.Context, doctorID domain.DoctorID, dates domain.DateRange) ([]domain.Slot, error) {
	return a.next.ListSlots(ctx, doctorID, dates)
}

func (a *CachedBookingAPI) CreateBooking(ctx context.Context, req domain.BookingRequest) (string, error) {
	message, err := a.next.CreateBooking(ctx, req)
	if err == nil {
		a.logger.Debug("cache.booking.created", out.LogFields{
			"doctorId": req.DoctorID,
		})
	}
	return message, err
}
