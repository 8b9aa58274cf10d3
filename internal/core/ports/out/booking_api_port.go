package out

import (
	"context"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
)

// BookingAPIPort — REST API записи. Ошибки возвращаются как *domain.GatewayError.
type BookingAPIPort interface {
	// GET /api/lekarze
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
	// GET /api/lekarze/{id}
	GetDoctor(ctx context.Context, doctorID domain.DoctorID) (*domain.Doctor, error)
	// GET /api/terminy, границы диапазона включительно
	ListSlots(ctx context.Context, doctorID domain.DoctorID, dates domain.DateRange) ([]domain.Slot, error)
	// POST /api/wizyty, возвращает сообщение сервера
	CreateBooking(ctx context.Context, req domain.BookingRequest) (string, error)
}
