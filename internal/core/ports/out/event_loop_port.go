package out

import (
	"context"
	"time"
)

// EventLoopPort — однопоточный цикл событий сессии.
// Все обработчики и продолжения запросов выполняются на нем по очереди.
type EventLoopPort interface {
	// Async выполняет work вне цикла, а возвращенное продолжение — на цикле.
	Async(work func(ctx context.Context) func())
	// AfterFunc выполняет fn на цикле через d. Возвращает отмену.
	AfterFunc(d time.Duration, fn func()) (cancel func())
	// Now — текущий момент в таймзоне пользователя.
	Now() time.Time
}
