package booking_service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/suchimauz/clinic-booking-controller/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

// Пациент в зоне UTC+2, "сегодня" — 2099-06-01, все дни июня доступны.
var testZone = time.FixedZone("CEST", 2*60*60)

func testNow() time.Time {
	return time.Date(2099, time.June, 1, 9, 30, 0, 0, testZone)
}

type slotsCall struct {
	DoctorID domain.DoctorID
	Dates    domain.DateRange
}

type fakeAPI struct {
	doctors        []domain.Doctor
	listDoctorsErr error
	getDoctorErr   error
	slots          []domain.Slot
	slotsErr       error
	bookingMessage string
	bookingErr     error

	getDoctorCalls []domain.DoctorID
	slotsCalls     []slotsCall
	bookings       []domain.BookingRequest
}

func (a *fakeAPI) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	if a.listDoctorsErr != nil {
		return nil, a.listDoctorsErr
	}
	return a.doctors, nil
}

func (a *fakeAPI) GetDoctor(ctx context.Context, doctorID domain.DoctorID) (*domain.Doctor, error) {
	a.getDoctorCalls = append(a.getDoctorCalls, doctorID)
	if a.getDoctorErr != nil {
		return nil, a.getDoctorErr
	}
	for _, d := range a.doctors {
		if d.ID.Equal(doctorID) {
			doctor := d
			return &doctor, nil
		}
	}
	return nil, &domain.GatewayError{Op: "getDoctor", Kind: domain.FailureHTTP, Status: 404}
}

func (a *fakeAPI) ListSlots(ctx context.Context, doctorID domain.DoctorID, dates domain.DateRange) ([]domain.Slot, error) {
	a.slotsCalls = append(a.slotsCalls, slotsCall{DoctorID: doctorID, Dates: dates})
	if a.slotsErr != nil {
		return nil, a.slotsErr
	}
	return a.slots, nil
}

func (a *fakeAPI) CreateBooking(ctx context.Context, req domain.BookingRequest) (string, error) {
	a.bookings = append(a.bookings, req)
	if a.bookingErr != nil {
		return "", a.bookingErr
	}
	return a.bookingMessage, nil
}

type fakeView struct {
	visible  map[domain.ElementID]bool
	html     map[domain.ElementID]string
	text     map[domain.ElementID]string
	values   map[domain.ElementID]string
	disabled map[domain.ElementID]bool
	classOps []string
	alerts   []string
	modals   []domain.ElementID
	console  []string
}

func newFakeView() *fakeView {
	return &fakeView{
		visible:  make(map[domain.ElementID]bool),
		html:     make(map[domain.ElementID]string),
		text:     make(map[domain.ElementID]string),
		values:   make(map[domain.ElementID]string),
		disabled: make(map[domain.ElementID]bool),
	}
}

func (v *fakeView) SetHTML(id domain.ElementID, html string)   { v.html[id] = html }
func (v *fakeView) SetText(id domain.ElementID, text string)   { v.text[id] = text }
func (v *fakeView) SetValue(id domain.ElementID, value string) { v.values[id] = value }
func (v *fakeView) Show(id domain.ElementID)                   { v.visible[id] = true }
func (v *fakeView) Hide(id domain.ElementID)                   { v.visible[id] = false }
func (v *fakeView) SetDisabled(id domain.ElementID, d bool)    { v.disabled[id] = d }
func (v *fakeView) Alert(message string)                       { v.alerts = append(v.alerts, message) }
func (v *fakeView) ShowModal(id domain.ElementID)              { v.modals = append(v.modals, id) }

func (v *fakeView) AddClass(selector, class string) {
	v.classOps = append(v.classOps, fmt.Sprintf("add %s %s", selector, class))
}

func (v *fakeView) RemoveClass(selector, class string) {
	v.classOps = append(v.classOps, fmt.Sprintf("remove %s %s", selector, class))
}

func (v *fakeView) ConsoleError(message string, fields out.LogFields) {
	v.console = append(v.console, message)
}

func (v *fakeView) visibleSteps() []domain.Step {
	var steps []domain.Step
	for _, st := range domain.Steps {
		if v.visible[st.Element()] {
			steps = append(steps, st)
		}
	}
	return steps
}

type fakeCalendar struct {
	refetches int
}

func (c *fakeCalendar) RefetchEvents() {
	c.refetches++
}

type fakeTimer struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

// fakeLoop копит отложенные запросы, тест сам решает, в каком порядке они завершатся.
type fakeLoop struct {
	now     time.Time
	pending []func(ctx context.Context) func()
	timers  []*fakeTimer
}

func (l *fakeLoop) Async(work func(ctx context.Context) func()) {
	l.pending = append(l.pending, work)
}

func (l *fakeLoop) AfterFunc(d time.Duration, fn func()) func() {
	timer := &fakeTimer{delay: d, fn: fn}
	l.timers = append(l.timers, timer)
	return func() { timer.cancelled = true }
}

func (l *fakeLoop) Now() time.Time {
	return l.now
}

func (l *fakeLoop) run(i int) {
	work := l.pending[i]
	l.pending = append(l.pending[:i:i], l.pending[i+1:]...)
	if cont := work(context.Background()); cont != nil {
		cont()
	}
}

func (l *fakeLoop) runAll() {
	for len(l.pending) > 0 {
		l.run(0)
	}
}

func (l *fakeLoop) activeTimers() []*fakeTimer {
	var active []*fakeTimer
	for _, t := range l.timers {
		if !t.cancelled {
			active = append(active, t)
		}
	}
	return active
}

func (l *fakeLoop) fireTimers() {
	timers := l.activeTimers()
	l.timers = nil
	for _, t := range timers {
		t.fn()
	}
}

type harness struct {
	svc  *Service
	api  *fakeAPI
	view *fakeView
	cal  *fakeCalendar
	loop *fakeLoop
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api: &fakeAPI{
			doctors:        []domain.Doctor{doctor7(), doctor8()},
			bookingMessage: "OK",
		},
		view: newFakeView(),
		cal:  &fakeCalendar{},
		loop: &fakeLoop{now: testNow()},
	}
	h.svc = NewBookingService(h.api, h.view, h.cal, h.loop, logger.NewNopLogger())
	return h
}

func doctor7() domain.Doctor {
	return domain.Doctor{ID: json_types.NewID("7"), FirstName: "Anna", LastName: "Kowalska"}
}

func doctor8() domain.Doctor {
	return domain.Doctor{
		ID:             json_types.NewID("8"),
		Title:          "dr",
		FirstName:      "Jan",
		LastName:       "Nowak",
		Specialization: "Kardiolog",
	}
}

func slot(id, date, from, to string, status domain.SlotStatus) domain.Slot {
	return domain.Slot{
		ID:     json_types.NewID(id),
		Date:   json_types.MustParseDate(date),
		Start:  json_types.MustParseTime(from),
		End:    json_types.MustParseTime(to),
		Status: status,
	}
}

func slot42() domain.Slot {
	return slot("42", "2099-06-15", "10:00", "10:30", domain.SlotStatusFree)
}

func localDay(date string) time.Time {
	return json_types.MustParseDate(date).In(testZone)
}

// Сценарии ниже начинаются с загруженного списка врачей.
func (h *harness) start() {
	h.svc.Init()
	h.loop.runAll()
}

func (h *harness) pickDoctor(id string) {
	h.svc.UserClicksDoctor(json_types.NewID(id))
	h.loop.runAll()
}

func (h *harness) pickDate(date string) {
	h.svc.UserClicksCalendarDate(json_types.MustParseDate(date))
	h.loop.runAll()
}

type calendarResult struct {
	calls  int
	events []domain.CalendarEvent
	err    error
}

func (h *harness) requestEvents(from, to string, res *calendarResult) {
	h.svc.CalendarRequestsEvents(localDay(from), localDay(to),
		func(events []domain.CalendarEvent) {
			res.calls++
			res.events = events
		},
		func(err error) {
			res.calls++
			res.err = err
		},
	)
}
