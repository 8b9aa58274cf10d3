package booking_service

import (
	"context"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
	"github.com/suchimauz/clinic-booking-controller/internal/utils"
)

func (s *Service) UserClicksCalendarDate(date json_types.Date) {
	if s.state != domain.BookingStatePickingSlot || s.session.Doctor == nil {
		s.logger.Debug("booking.date.click_ignored", out.LogFields{
			"date":  date.String(),
			"state": s.state,
		})
		return
	}

	now := s.loop.Now()
	if utils.IsPastDay(date, now, now.Location()) {
		s.logger.Info("booking.date.past_rejected", out.LogFields{
			"date": date.String(),
			"now":  now,
		})
		s.viewPort.Alert(msgPastDate)
		return
	}

	s.session.SelectDate(date)
	s.loadDaySlots(s.session.Doctor.ID, date)
}

func (s *Service) loadDaySlots(doctorID domain.DoctorID, date json_types.Date) {
	s.viewPort.SetHTML(domain.ElementAvailableTimes, s.render("spinner", msgLoading))

	dates := domain.SingleDay(date)
	s.logger.Debug("booking.day_slots.fetch", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
	})
	s.loop.Async(func(ctx context.Context) func() {
		slots, err := s.apiPort.ListSlots(ctx, doctorID, dates)
		return func() { s.onDaySlotsLoaded(doctorID, date, slots, err) }
	})
}

func (s *Service) onDaySlotsLoaded(doctorID domain.DoctorID, date json_types.Date, slots []domain.Slot, err error) {
	if s.session.Doctor == nil || !s.session.Doctor.ID.Equal(doctorID) ||
		s.session.Date == nil || !s.session.Date.Equal(date) ||
		s.state != domain.BookingStatePickingSlot {
		s.logger.Debug("booking.day_slots.stale_response", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
		})
		return
	}

	// Список дня заменяется целиком, выбранный слот из старого списка недействителен
	s.session.Slot = nil
	s.session.SlotsForDate = nil

	if err != nil {
		s.logger.Error("booking.day_slots.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"kind":     domain.FailureOf(err),
			"error":    err.Error(),
		})
		switch domain.FailureOf(err) {
		case domain.FailureNetwork, domain.FailureHTTP:
			s.viewPort.SetHTML(domain.ElementAvailableTimes, s.renderAlert("danger", msgSlotsLoadFailed))
		default:
			s.viewPort.SetHTML(domain.ElementAvailableTimes, s.renderAlert("warning", msgNoSlots))
		}
		return
	}

	s.session.SlotsForDate = slots
	buttons, count := s.renderSlotButtons(slots)
	s.logger.Debug("booking.day_slots.fetch_success", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
		"slots":    len(slots),
		"free":     count,
	})
	if count == 0 {
		s.viewPort.SetHTML(domain.ElementAvailableTimes, s.renderAlert("warning", msgNoSlots))
		return
	}
	s.viewPort.SetHTML(domain.ElementAvailableTimes, buttons)
}

func (s *Service) UserClicksSlot(index int) {
	if s.state != domain.BookingStatePickingSlot {
		s.logger.Debug("booking.slot.click_ignored", out.LogFields{
			"index": index,
			"state": s.state,
		})
		return
	}

	slot, err := s.session.SelectSlot(index)
	if err != nil {
		s.logger.Warn("booking.slot.select_rejected", out.LogFields{
			"index": index,
			"error": err.Error(),
		})
		return
	}

	s.viewPort.RemoveClass(domain.SelectorTimeSlots, "btn-primary")
	s.viewPort.AddClass(domain.SelectorTimeSlots, "btn-outline-primary")
	s.viewPort.RemoveClass(timeSlotSelector(index), "btn-outline-primary")
	s.viewPort.AddClass(timeSlotSelector(index), "btn-primary")

	s.logger.Info("booking.slot.selected", out.LogFields{
		"slotId": slot.ID,
		"date":   slot.Date.String(),
		"start":  slot.Start.Short(),
	})

	s.setState(domain.BookingStateSlotPicked)
	s.router.Apply(domain.StepEventSlotSelected)
	s.viewPort.SetHTML(domain.ElementAppointmentSummary, s.renderSummary(s.session))
}

func (s *Service) UserClicksBack() {
	if s.state != domain.BookingStateSlotPicked {
		return
	}

	s.setState(domain.BookingStatePickingSlot)
	s.router.Apply(domain.StepEventBackToCalendar)
	s.calendarPort.RefetchEvents()
}
