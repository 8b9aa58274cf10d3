package booking_service

import (
	"time"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/in"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

const DefaultResetDelay = 5 * time.Second

var _ in.BookingUseCase = (*Service)(nil)

// Service — конечный автомат страницы записи. Один экземпляр на вкладку браузера,
// все методы вызываются только на цикле событий сессии.
type Service struct {
	apiPort      out.BookingAPIPort
	viewPort     out.ViewPort
	calendarPort out.CalendarPort
	loop         out.EventLoopPort
	metrics      out.MetricsPort
	logger       out.LoggerPort
	router       *StepRouter
	resetDelay   time.Duration

	state   domain.BookingState
	session domain.SessionState

	// Карточка, подсвеченная последним кликом. По ней отсекаются устаревшие ответы getDoctor.
	highlightedDoctor *domain.DoctorID
	// Окно, которое виджет запросил последним.
	shownRange  domain.DateRange
	cancelReset func()
	// Номер последней отправки записи. Состояние и кнопку меняет только ее ответ.
	submission int
}

type Option func(*Service)

func WithResetDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.resetDelay = d
		}
	}
}

func WithMetrics(m out.MetricsPort) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewBookingService(
	apiPort out.BookingAPIPort,
	viewPort out.ViewPort,
	calendarPort out.CalendarPort,
	loop out.EventLoopPort,
	logger out.LoggerPort,
	opts ...Option,
) *Service {
	s := &Service{
		apiPort:      apiPort,
		viewPort:     viewPort,
		calendarPort: calendarPort,
		loop:         loop,
		logger:       logger.WithModule("BookingService"),
		router:       NewStepRouter(viewPort),
		resetDelay:   DefaultResetDelay,
		state:        domain.BookingStateLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) State() domain.BookingState {
	return s.state
}

func (s *Service) Step() domain.Step {
	return s.router.Current()
}

// Session возвращает копию текущего выбора.
func (s *Service) Session() domain.SessionState {
	state := s.session
	if s.session.SlotsForDate != nil {
		state.SlotsForDate = append([]domain.Slot(nil), s.session.SlotsForDate...)
	}
	return state
}

func (s *Service) setState(next domain.BookingState) {
	if s.state == next {
		return
	}
	s.logger.Debug("booking.state.changed", out.LogFields{
		"from": s.state,
		"to":   next,
	})
	s.state = next
}

func (s *Service) observeBooking(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveBooking(outcome)
	}
}
