package out

// CalendarPort — виджет календаря. Источник событий у него pull-модели:
// виджет сам вызывает in.BookingUseCase.CalendarRequestsEvents для видимого диапазона.
type CalendarPort interface {
	RefetchEvents()
}
