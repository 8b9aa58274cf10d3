package in

import (
	"time"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
)

// BookingUseCase — события пользователя и виджета. Вызывать только на цикле сессии.
type BookingUseCase interface {
	// Загрузка страницы
	Init()

	UserClicksDoctor(doctorID domain.DoctorID)
	UserClicksCalendarDate(date json_types.Date)
	UserClicksSlot(index int)
	UserClicksBack()
	UserClicksConfirm(note string)
	UserClicksChangeDoctor()

	// Источник событий календаря: [start, end) видимого окна виджета.
	CalendarRequestsEvents(start, end time.Time, ok func([]domain.CalendarEvent), fail func(error))

	// Слоты врача изменились вне этой сессии
	RefreshCalendar(doctorID domain.DoctorID)

	State() domain.BookingState
	Step() domain.Step
	Session() domain.SessionState
}
