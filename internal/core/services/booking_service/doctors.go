package booking_service

import (
	"context"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

// Init — загрузка страницы: показываем выбор врача и запрашиваем список.
// Повторный init (перезагрузка моста) начинает выбор заново.
func (s *Service) Init() {
	if s.state != domain.BookingStateLoading {
		s.reset()
	}
	s.setState(domain.BookingStateLoading)
	s.router.ShowDoctorSelection()
	s.viewPort.SetHTML(domain.ElementDoctorsList, s.render("spinner", msgLoading))

	s.logger.Info("booking.doctors.fetch", out.LogFields{})
	s.loop.Async(func(ctx context.Context) func() {
		doctors, err := s.apiPort.ListDoctors(ctx)
		return func() { s.onDoctorsLoaded(doctors, err) }
	})
}

func (s *Service) onDoctorsLoaded(doctors []domain.Doctor, err error) {
	if err != nil {
		s.logger.Error("booking.doctors.fetch_failed", out.LogFields{
			"kind":  domain.FailureOf(err),
			"error": err.Error(),
		})
		switch domain.FailureOf(err) {
		case domain.FailureNetwork, domain.FailureHTTP:
			s.viewPort.SetHTML(domain.ElementDoctorsList, s.renderAlert("danger", msgDoctorsLoadFailed))
			// Повтор — перезагрузка страницы
			s.setState(domain.BookingStateError)
		default:
			s.viewPort.SetHTML(domain.ElementDoctorsList, s.renderAlert("warning", msgNoDoctors))
			s.setState(domain.BookingStatePickingDoctor)
		}
		return
	}

	s.setState(domain.BookingStatePickingDoctor)

	if len(doctors) == 0 {
		s.logger.Info("booking.doctors.empty", out.LogFields{})
		s.viewPort.SetHTML(domain.ElementDoctorsList, s.renderAlert("warning", msgNoDoctors))
		return
	}

	s.logger.Debug("booking.doctors.fetch_success", out.LogFields{
		"count": len(doctors),
	})
	s.viewPort.SetHTML(domain.ElementDoctorsList, s.renderDoctorCards(doctors))
}

func (s *Service) UserClicksDoctor(doctorID domain.DoctorID) {
	if s.state != domain.BookingStatePickingDoctor {
		s.logger.Debug("booking.doctor.click_ignored", out.LogFields{
			"doctorId": doctorID,
			"state":    s.state,
		})
		return
	}

	s.highlightedDoctor = &doctorID
	s.viewPort.RemoveClass(domain.SelectorDoctorCards, "selected")
	s.viewPort.AddClass(doctorCardSelector(doctorID), "selected")

	s.logger.Info("booking.doctor.fetch", out.LogFields{
		"doctorId": doctorID,
	})
	s.loop.Async(func(ctx context.Context) func() {
		doctor, err := s.apiPort.GetDoctor(ctx, doctorID)
		return func() { s.onDoctorLoaded(doctorID, doctor, err) }
	})
}

func (s *Service) onDoctorLoaded(doctorID domain.DoctorID, doctor *domain.Doctor, err error) {
	if s.highlightedDoctor == nil || !s.highlightedDoctor.Equal(doctorID) || s.state != domain.BookingStatePickingDoctor {
		s.logger.Debug("booking.doctor.stale_response", out.LogFields{
			"doctorId": doctorID,
			"state":    s.state,
		})
		return
	}

	if err != nil {
		s.logger.Error("booking.doctor.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"kind":     domain.FailureOf(err),
			"error":    err.Error(),
		})
		s.viewPort.ConsoleError("Error loading doctor details", out.LogFields{
			"doctorId": doctorID.String(),
			"kind":     string(domain.FailureOf(err)),
			"error":    err.Error(),
		})
		switch domain.FailureOf(err) {
		case domain.FailureSchema, domain.FailureServerReported:
			s.viewPort.Alert(msgInvalidResponse)
		default:
			s.viewPort.Alert(msgDoctorLoadFailed)
		}
		return
	}

	s.session.Reset()
	s.session.Doctor = doctor
	s.shownRange = domain.DateRange{}
	s.setState(domain.BookingStatePickingSlot)

	s.logger.Info("booking.doctor.selected", out.LogFields{
		"doctorId": doctor.ID,
	})

	s.router.Apply(domain.StepEventDoctorSelected)
	s.viewPort.SetHTML(domain.ElementDoctorInfo, s.renderDoctorInfo(*doctor))
	s.viewPort.SetHTML(domain.ElementAvailableTimes, "")
	s.calendarPort.RefetchEvents()
}
