package websocket

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

var _ out.EventLoopPort = (*EventLoop)(nil)

// EventLoop — одна горутина на сессию. Обработчики событий браузера, продолжения
// HTTP запросов и таймеры выполняются на ней строго по очереди.
type EventLoop struct {
	ctx      context.Context
	cancel   context.CancelFunc
	tasks    chan func()
	location atomic.Pointer[time.Location]
	now      func() time.Time
}

func NewEventLoop(parent context.Context, loc *time.Location) *EventLoop {
	ctx, cancel := context.WithCancel(parent)
	l := &EventLoop{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(chan func(), 64),
		now:    time.Now,
	}
	l.SetLocation(loc)
	return l
}

// Run обрабатывает задачи до остановки цикла.
func (l *EventLoop) Run() {
	for {
		select {
		case <-l.ctx.Done():
			return
		case task := <-l.tasks:
			task()
		}
	}
}

func (l *EventLoop) Stop() {
	l.cancel()
}

func (l *EventLoop) Done() <-chan struct{} {
	return l.ctx.Done()
}

// Post ставит задачу в очередь цикла. false — цикл уже остановлен.
func (l *EventLoop) Post(task func()) bool {
	if l.ctx.Err() != nil {
		return false
	}
	select {
	case <-l.ctx.Done():
		return false
	case l.tasks <- task:
		return true
	}
}

func (l *EventLoop) Async(work func(ctx context.Context) func()) {
	go func() {
		cont := work(l.ctx)
		if cont != nil {
			l.Post(cont)
		}
	}()
}

func (l *EventLoop) AfterFunc(d time.Duration, fn func()) func() {
	// cancelled читается и пишется только на цикле
	cancelled := false
	timer := time.AfterFunc(d, func() {
		l.Post(func() {
			if !cancelled {
				fn()
			}
		})
	})
	return func() {
		cancelled = true
		timer.Stop()
	}
}

func (l *EventLoop) Now() time.Time {
	return l.now().In(l.Location())
}

func (l *EventLoop) Location() *time.Location {
	return l.location.Load()
}

// SetLocation — таймзона браузера, приходит в init.
func (l *EventLoop) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	l.location.Store(loc)
}
