package in

import (
	"context"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
)

// LiveUpdateUseCase реагирует на изменения данных клиники, пришедшие из очереди.
type LiveUpdateUseCase interface {
	SlotsChanged(ctx context.Context, doctorID domain.DoctorID) error
	DoctorChanged(ctx context.Context, doctorID domain.DoctorID) error
	AllChanged(ctx context.Context) error
}
