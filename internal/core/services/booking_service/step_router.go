package booking_service

import (
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

// Разрешенные переходы между шагами. Пар, которых нет в таблице, не существует:
// такие события игнорируются.
var stepTransitions = map[domain.Step]map[domain.StepEvent]domain.Step{
	domain.StepDoctorSelection: {
		domain.StepEventDoctorSelected: domain.StepCalendar,
		domain.StepEventBackToDoctors:  domain.StepDoctorSelection,
	},
	domain.StepCalendar: {
		domain.StepEventDoctorSelected: domain.StepCalendar,
		domain.StepEventSlotSelected:   domain.StepDetails,
		domain.StepEventBackToDoctors:  domain.StepDoctorSelection,
	},
	domain.StepDetails: {
		domain.StepEventBackToCalendar:   domain.StepCalendar,
		domain.StepEventBookingSucceeded: domain.StepDoctorSelection,
		domain.StepEventBackToDoctors:    domain.StepDoctorSelection,
	},
}

// StepRouter держит видимой ровно одну из трех панелей.
type StepRouter struct {
	view    out.ViewPort
	current domain.Step
}

func NewStepRouter(view out.ViewPort) *StepRouter {
	return &StepRouter{
		view:    view,
		current: domain.StepDoctorSelection,
	}
}

func (r *StepRouter) Current() domain.Step {
	return r.current
}

func (r *StepRouter) ShowDoctorSelection() {
	r.show(domain.StepDoctorSelection)
}

func (r *StepRouter) ShowCalendar() {
	r.show(domain.StepCalendar)
}

func (r *StepRouter) ShowDetails() {
	r.show(domain.StepDetails)
}

// Apply выполняет переход по таблице. Второе значение — был ли переход разрешен.
func (r *StepRouter) Apply(event domain.StepEvent) (domain.Step, bool) {
	next, ok := stepTransitions[r.current][event]
	if !ok {
		return r.current, false
	}
	r.show(next)
	return next, true
}

func (r *StepRouter) show(step domain.Step) {
	// Сначала прячем, потом показываем: в любой момент видна максимум одна панель
	for _, st := range domain.Steps {
		if st != step {
			r.view.Hide(st.Element())
		}
	}
	r.view.Show(step.Element())
	r.current = step
}
