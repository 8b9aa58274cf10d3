package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
	"golang.org/x/time/rate"
)

// fakeBooking записывает вызовы, которые до него доходят через цикл сессии.
type fakeBooking struct {
	mu     sync.Mutex
	calls  []string
	view   out.ViewPort
	doctor *domain.Doctor

	// ответ источника событий календаря
	events   []domain.CalendarEvent
	eventErr error
}

func (b *fakeBooking) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

func (b *fakeBooking) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBooking) Init() {
	b.record("init")
	if b.view != nil {
		b.view.SetHTML(domain.ElementDoctorsList, "<p>ok</p>")
	}
}

func (b *fakeBooking) UserClicksDoctor(id domain.DoctorID) {
	b.record("doctor:" + id.String())
}

func (b *fakeBooking) UserClicksCalendarDate(d json_types.Date) {
	b.record("date:" + d.String())
}

func (b *fakeBooking) UserClicksSlot(i int) {
	b.record(fmt.Sprintf("slot:%d", i))
}

func (b *fakeBooking) UserClicksBack() {
	b.record("back")
}

func (b *fakeBooking) UserClicksConfirm(note string) {
	b.record("confirm:" + note)
}

func (b *fakeBooking) UserClicksChangeDoctor() {
	b.record("change")
}

func (b *fakeBooking) CalendarRequestsEvents(start, end time.Time, ok func([]domain.CalendarEvent), fail func(error)) {
	b.record(fmt.Sprintf("events:%s..%s", start.Format(time.RFC3339), end.Format(time.RFC3339)))
	if b.eventErr != nil {
		fail(b.eventErr)
		return
	}
	ok(b.events)
}

func (b *fakeBooking) RefreshCalendar(id domain.DoctorID) {
	b.record("refresh:" + id.String())
}

func (b *fakeBooking) State() domain.BookingState {
	return domain.BookingStatePickingDoctor
}

func (b *fakeBooking) Step() domain.Step {
	return domain.StepDoctorSelection
}

func (b *fakeBooking) Session() domain.SessionState {
	return domain.SessionState{Doctor: b.doctor}
}

func newRunningSession(t *testing.T, id string, booking *fakeBooking) *Session {
	t.Helper()
	loop := NewEventLoop(context.Background(), time.UTC)
	t.Cleanup(loop.Stop)
	go loop.Run()

	session := NewSession(id, loop, rate.NewLimiter(rate.Inf, 1), logger.NewNopLogger())
	session.Attach(booking)
	return session
}

func waitCalls(t *testing.T, booking *fakeBooking, n int) []string {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(booking.Calls()) >= n
	}, time.Second, 5*time.Millisecond)
	return booking.Calls()
}

func nextCommand(t *testing.T, session *Session) Command {
	t.Helper()
	select {
	case raw := <-session.Send:
		var cmd Command
		require.NoError(t, json.Unmarshal(raw, &cmd))
		return cmd
	case <-time.After(time.Second):
		t.Fatal("no command sent")
	}
	return Command{}
}
