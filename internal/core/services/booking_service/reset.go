package booking_service

import (
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

// reset очищает выбор, поле заметки и подсветку карточки врача.
func (s *Service) reset() {
	s.cancelPendingReset()
	s.session.Reset()
	s.highlightedDoctor = nil
	s.shownRange = domain.DateRange{}

	s.viewPort.SetValue(domain.ElementAppointmentNotes, "")
	s.viewPort.RemoveClass(domain.SelectorDoctorCards, "selected")
	s.viewPort.SetHTML(domain.ElementAvailableTimes, "")
}

func (s *Service) UserClicksChangeDoctor() {
	s.logger.Info("booking.doctor.change", out.LogFields{
		"state": s.state,
	})
	s.reset()
	s.setState(domain.BookingStatePickingDoctor)
	s.router.Apply(domain.StepEventBackToDoctors)
	s.calendarPort.RefetchEvents()
}

func (s *Service) autoReset() {
	s.cancelReset = nil
	if s.state != domain.BookingStateDone {
		return
	}

	s.logger.Info("booking.auto_reset", out.LogFields{})
	s.router.Apply(domain.StepEventBookingSucceeded)
	s.reset()
	s.setState(domain.BookingStatePickingDoctor)
	s.calendarPort.RefetchEvents()
}
