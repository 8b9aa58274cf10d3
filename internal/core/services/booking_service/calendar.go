package booking_service

import (
	"context"
	"time"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
	"github.com/suchimauz/clinic-booking-controller/internal/utils"
)

// CalendarRequestsEvents отвечает на запрос виджета для его видимого окна.
// Окно задает только виджет, сами события мы не проталкиваем.
func (s *Service) CalendarRequestsEvents(start, end time.Time, ok func([]domain.CalendarEvent), fail func(error)) {
	if s.session.Doctor == nil {
		s.logger.Debug("booking.calendar.no_doctor", out.LogFields{})
		ok([]domain.CalendarEvent{})
		return
	}

	loc := s.loop.Now().Location()
	dates := domain.NewDateRange(utils.LocalDate(start, loc), utils.LocalDate(end, loc))
	doctorID := s.session.Doctor.ID
	s.shownRange = dates

	s.logger.Debug("booking.calendar.fetch", out.LogFields{
		"doctorId": doctorID,
		"range":    dates.String(),
	})
	s.loop.Async(func(ctx context.Context) func() {
		slots, err := s.apiPort.ListSlots(ctx, doctorID, dates)
		return func() { s.onCalendarSlotsLoaded(doctorID, dates, slots, err, ok, fail) }
	})
}

func (s *Service) onCalendarSlotsLoaded(
	doctorID domain.DoctorID,
	dates domain.DateRange,
	slots []domain.Slot,
	err error,
	ok func([]domain.CalendarEvent),
	fail func(error),
) {
	if s.session.Doctor == nil || !s.session.Doctor.ID.Equal(doctorID) || !s.shownRange.Equal(dates) {
		s.logger.Debug("booking.calendar.stale_response", out.LogFields{
			"doctorId": doctorID,
			"range":    dates.String(),
		})
		return
	}

	if err != nil {
		s.logger.Error("booking.calendar.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"range":    dates.String(),
			"kind":     domain.FailureOf(err),
			"error":    err.Error(),
		})
		switch domain.FailureOf(err) {
		case domain.FailureNetwork, domain.FailureHTTP:
			fail(err)
		default:
			// Ответ без терминов — пустой календарь
			ok([]domain.CalendarEvent{})
		}
		return
	}

	events := domain.NewCalendarEvents(slots)
	s.logger.Debug("booking.calendar.fetch_success", out.LogFields{
		"doctorId": doctorID,
		"range":    dates.String(),
		"events":   len(events),
	})
	ok(events)
}

// RefreshCalendar — слоты врача изменились в другом месте.
func (s *Service) RefreshCalendar(doctorID domain.DoctorID) {
	if s.session.Doctor == nil || !s.session.Doctor.ID.Equal(doctorID) {
		return
	}

	s.logger.Info("booking.calendar.refresh", out.LogFields{
		"doctorId": doctorID,
	})
	s.calendarPort.RefetchEvents()

	// Если пациент смотрит слоты дня, перечитываем и их
	if s.state == domain.BookingStatePickingSlot && s.session.Date != nil {
		s.loadDaySlots(doctorID, *s.session.Date)
	}
}
