package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/in"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
	"github.com/suchimauz/clinic-booking-controller/internal/utils"
	"golang.org/x/time/rate"
)

var (
	_ out.ViewPort     = (*Session)(nil)
	_ out.CalendarPort = (*Session)(nil)
)

// Session — одна вкладка браузера: мост между страницей и оркестратором записи.
type Session struct {
	ID      string
	Send    chan []byte
	loop    *EventLoop
	booking in.BookingUseCase
	limiter *rate.Limiter
	options domain.CalendarOptions
	logger  out.LoggerPort
}

func NewSession(id string, loop *EventLoop, limiter *rate.Limiter, logger out.LoggerPort) *Session {
	return &Session{
		ID:      id,
		Send:    make(chan []byte, 256),
		loop:    loop,
		limiter: limiter,
		options: domain.DefaultCalendarOptions(),
		logger:  logger.WithModule("BookingSession").WithFields(out.LogFields{"sessionId": id}),
	}
}

// Attach связывает сессию с оркестратором. Вызывается до первого сообщения.
func (s *Session) Attach(booking in.BookingUseCase) {
	s.booking = booking
}

// HandleMessage разбирает сообщение браузера и ставит его обработку в цикл сессии.
// Вызывается из горутины чтения.
func (s *Session) HandleMessage(raw []byte) {
	if !s.limiter.Allow() {
		s.logger.Warn("session.message.rate_limited", out.LogFields{
			"size": len(raw),
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.logger.Warn("session.message.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	s.loop.Post(func() { s.dispatch(msg) })
}

func (s *Session) dispatch(msg ClientMessage) {
	s.logger.Debug("session.message", out.LogFields{
		"type": msg.Type,
	})

	switch msg.Type {
	case MsgInit:
		s.init(msg.Timezone)
	case MsgDoctorSelect:
		if msg.DoctorID.IsZero() {
			s.invalid(msg, fmt.Errorf("doctorId is required"))
			return
		}
		s.booking.UserClicksDoctor(msg.DoctorID)
	case MsgCalendarEvents:
		s.calendarEvents(msg)
	case MsgDateSelect:
		date, err := json_types.ParseDate(msg.Date)
		if err != nil {
			s.invalid(msg, err)
			return
		}
		s.booking.UserClicksCalendarDate(date)
	case MsgSlotSelect:
		if msg.Index == nil {
			s.invalid(msg, fmt.Errorf("index is required"))
			return
		}
		s.booking.UserClicksSlot(*msg.Index)
	case MsgDetailsBack:
		s.booking.UserClicksBack()
	case MsgBookingConfirm:
		s.booking.UserClicksConfirm(msg.Note)
	case MsgDoctorChange:
		s.booking.UserClicksChangeDoctor()
	default:
		s.invalid(msg, fmt.Errorf("unknown message type"))
	}
}

func (s *Session) init(timezone string) {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			s.logger.Warn("session.init.bad_timezone", out.LogFields{
				"timezone": timezone,
				"error":    err.Error(),
			})
		} else {
			s.loop.SetLocation(loc)
		}
	}

	s.logger.Info("session.init", out.LogFields{
		"timezone": s.loop.Location().String(),
	})
	options := s.options
	s.emit(Command{Op: OpCalendarOptions, Options: &options})
	s.booking.Init()
}

func (s *Session) calendarEvents(msg ClientMessage) {
	requestID := msg.RequestID
	loc := s.loop.Location()

	start, err := utils.ParseDate(msg.Start, loc)
	if err != nil {
		s.invalid(msg, err)
		s.emit(Command{Op: OpCalendarFailure, RequestID: requestID, Message: err.Error()})
		return
	}
	end, err := utils.ParseDate(msg.End, loc)
	if err != nil {
		s.invalid(msg, err)
		s.emit(Command{Op: OpCalendarFailure, RequestID: requestID, Message: err.Error()})
		return
	}

	s.booking.CalendarRequestsEvents(start, end,
		func(events []domain.CalendarEvent) {
			s.emit(Command{Op: OpCalendarEvents, RequestID: requestID, Events: events})
		},
		func(err error) {
			s.emit(Command{Op: OpCalendarFailure, RequestID: requestID, Message: err.Error()})
		},
	)
}

func (s *Session) invalid(msg ClientMessage, err error) {
	s.logger.Warn("session.message.invalid", out.LogFields{
		"type":  msg.Type,
		"error": err.Error(),
	})
}

// RefreshCalendar — слоты врача изменились, оркестратор сам решит, касается ли это сессии.
func (s *Session) RefreshCalendar(doctorID domain.DoctorID) bool {
	return s.loop.Post(func() { s.booking.RefreshCalendar(doctorID) })
}

// RefreshCurrentCalendar обновляет календарь текущего врача сессии, если он выбран.
func (s *Session) RefreshCurrentCalendar() bool {
	return s.loop.Post(func() {
		if doctor := s.booking.Session().Doctor; doctor != nil {
			s.booking.RefreshCalendar(doctor.ID)
		}
	})
}

func (s *Session) emit(cmd Command) {
	data, err := json.Marshal(cmd)
	if err != nil {
		s.logger.Error("session.command.encode_failed", out.LogFields{
			"op":    cmd.Op,
			"error": err.Error(),
		})
		return
	}

	select {
	case s.Send <- data:
	case <-s.loop.Done():
	}
}

func (s *Session) SetHTML(id domain.ElementID, html string) {
	s.emit(Command{Op: OpHTML, ID: id, Content: html})
}

func (s *Session) SetText(id domain.ElementID, text string) {
	s.emit(Command{Op: OpText, ID: id, Content: text})
}

func (s *Session) SetValue(id domain.ElementID, value string) {
	s.emit(Command{Op: OpValue, ID: id, Content: value})
}

func (s *Session) Show(id domain.ElementID) {
	s.emit(Command{Op: OpShow, ID: id})
}

func (s *Session) Hide(id domain.ElementID) {
	s.emit(Command{Op: OpHide, ID: id})
}

func (s *Session) SetDisabled(id domain.ElementID, disabled bool) {
	s.emit(Command{Op: OpDisabled, ID: id, Disabled: &disabled})
}

func (s *Session) AddClass(selector string, class string) {
	s.emit(Command{Op: OpClassAdd, Selector: selector, Class: class})
}

func (s *Session) RemoveClass(selector string, class string) {
	s.emit(Command{Op: OpClassRemove, Selector: selector, Class: class})
}

func (s *Session) Alert(message string) {
	s.emit(Command{Op: OpAlert, Message: message})
}

func (s *Session) ShowModal(id domain.ElementID) {
	s.emit(Command{Op: OpModal, ID: id})
}

func (s *Session) ConsoleError(message string, fields out.LogFields) {
	s.emit(Command{Op: OpConsole, Message: message, Fields: fields})
}

func (s *Session) RefetchEvents() {
	s.emit(Command{Op: OpCalendarRefetch})
}
