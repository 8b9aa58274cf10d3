package out

import "time"

type MetricsPort interface {
	ObserveRequest(operation string, outcome string, duration time.Duration)
	ObserveBooking(outcome string)
	SessionOpened()
	SessionClosed()
}
