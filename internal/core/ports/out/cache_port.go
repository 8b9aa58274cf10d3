package out

import (
	"context"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
)

// CachePort — кэш справочника врачей. Слоты не кэшируются: их статус всегда берется с сервера.
type CachePort interface {
	GetDoctors(ctx context.Context) ([]domain.Doctor, bool)
	StoreDoctors(ctx context.Context, doctors []domain.Doctor)

	GetDoctor(ctx context.Context, doctorID domain.DoctorID) (*domain.Doctor, bool)
	StoreDoctor(ctx context.Context, doctor domain.Doctor)

	InvalidateDoctor(ctx context.Context, doctorID domain.DoctorID)
	InvalidateAllDoctors(ctx context.Context)
}
