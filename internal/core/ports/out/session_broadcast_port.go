package out

import "github.com/suchimauz/clinic-booking-controller/internal/core/domain"

// SessionBroadcastPort рассылает события всем открытым сессиям записи.
type SessionBroadcastPort interface {
	// RefreshCalendars просит сессии с выбранным врачом перечитать календарь.
	RefreshCalendars(doctorID domain.DoctorID) int
	// RefreshAllCalendars — то же для всех сессий.
	RefreshAllCalendars() int
}
