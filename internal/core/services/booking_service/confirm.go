package booking_service

import (
	"context"
	"strings"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

const (
	bookingOutcomeSuccess = "success"
	bookingOutcomeFailure = "failure"
)

func (s *Service) UserClicksConfirm(note string) {
	// В Submitting кнопка заблокирована, повторные клики сюда не доходят
	if s.state != domain.BookingStateSlotPicked {
		s.logger.Debug("booking.confirm.click_ignored", out.LogFields{
			"state": s.state,
		})
		return
	}

	if !s.session.IsComplete() {
		s.logger.Warn("booking.confirm.incomplete", out.LogFields{})
		s.viewPort.Alert(msgIncompleteBooking)
		return
	}

	req := domain.BookingRequest{
		SlotID:   s.session.Slot.ID,
		DoctorID: s.session.Doctor.ID,
		Note:     normalizeNote(note),
	}

	s.submission++
	submission := s.submission

	s.setState(domain.BookingStateSubmitting)
	s.viewPort.SetDisabled(domain.ElementConfirmAppointment, true)
	s.viewPort.SetHTML(domain.ElementConfirmAppointment, s.render("busyButton", msgSaving))

	s.logger.Info("booking.create", out.LogFields{
		"slotId":   req.SlotID,
		"doctorId": req.DoctorID,
		"hasNote":  req.Note != nil,
		"attempt":  submission,
	})
	s.loop.Async(func(ctx context.Context) func() {
		message, err := s.apiPort.CreateBooking(ctx, req)
		return func() { s.onBookingCreated(submission, req, message, err) }
	})
}

// Ответ на создание записи показывается всегда: запись на сервере уже состоялась или нет
// независимо от того, что пациент успел сделать на странице. Состояние, кнопку и сброс
// трогает только ответ на последнюю отправку, пока она в Submitting.
func (s *Service) onBookingCreated(submission int, req domain.BookingRequest, message string, err error) {
	latest := submission == s.submission
	current := latest && s.state == domain.BookingStateSubmitting

	// Пока летит более новая отправка, кнопка остается заблокированной
	if latest {
		s.viewPort.SetDisabled(domain.ElementConfirmAppointment, false)
		s.viewPort.SetText(domain.ElementConfirmAppointment, labelConfirm)
	}

	if err != nil {
		s.observeBooking(bookingOutcomeFailure)
		s.logger.Error("booking.create_failed", out.LogFields{
			"slotId":   req.SlotID,
			"doctorId": req.DoctorID,
			"kind":     domain.FailureOf(err),
			"error":    err.Error(),
			"current":  current,
		})
		if current {
			s.setState(domain.BookingStateSlotPicked)
		}
		text := domain.ServerMessage(err)
		if text == "" {
			text = msgBookingFailed
		}
		s.viewPort.Alert(text)
		return
	}

	s.observeBooking(bookingOutcomeSuccess)
	s.logger.Info("booking.create_success", out.LogFields{
		"slotId":   req.SlotID,
		"doctorId": req.DoctorID,
	})

	if message == "" {
		message = msgBookingSucceeded
	}
	s.viewPort.SetText(domain.ElementSuccessMessage, message)
	s.viewPort.ShowModal(domain.ElementSuccessModal)

	if !current {
		// Пациент уже ушел к другому врачу или отправил новую запись
		return
	}
	s.setState(domain.BookingStateDone)
	s.scheduleReset()
}

func (s *Service) scheduleReset() {
	s.cancelPendingReset()
	s.cancelReset = s.loop.AfterFunc(s.resetDelay, s.autoReset)
}

func (s *Service) cancelPendingReset() {
	if s.cancelReset != nil {
		s.cancelReset()
		s.cancelReset = nil
	}
}

// normalizeNote: пустая заметка или одни пробелы уходят как null.
func normalizeNote(note string) *string {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
