package domain

const (
	EventColorFree        = "#28a745"
	EventBorderColorFree  = "#218838"
	EventColorTaken       = "#dc3545"
	EventBorderColorTaken = "#c82333"
	EventTextColor        = "#fff"

	EventTitleFree  = "Wolny termin"
	EventTitleTaken = "Zajęty"
)

type CalendarEventProps struct {
	Available bool   `json:"available"`
	SlotID    SlotID `json:"terminId"`
}

// CalendarEvent — объект события в формате виджета календаря.
type CalendarEvent struct {
	Title           string             `json:"title"`
	Start           string             `json:"start"`
	End             string             `json:"end"`
	AllDay          bool               `json:"allDay"`
	BackgroundColor string             `json:"backgroundColor"`
	BorderColor     string             `json:"borderColor"`
	TextColor       string             `json:"textColor"`
	ExtendedProps   CalendarEventProps `json:"extendedProps"`
}

// NewCalendarEvent собирает событие из слота: "YYYY-MM-DDTHH:MM:SS" без смещения,
// виджет трактует его в локальной зоне.
func NewCalendarEvent(slot Slot) CalendarEvent {
	day := slot.Date.String()
	event := CalendarEvent{
		Title:           EventTitleTaken,
		Start:           day + "T" + slot.Start.Clock(),
		End:             day + "T" + slot.End.Clock(),
		BackgroundColor: EventColorTaken,
		BorderColor:     EventBorderColorTaken,
		TextColor:       EventTextColor,
		ExtendedProps: CalendarEventProps{
			Available: slot.IsFree(),
			SlotID:    slot.ID,
		},
	}
	if slot.IsFree() {
		event.Title = EventTitleFree
		event.BackgroundColor = EventColorFree
		event.BorderColor = EventBorderColorFree
	}
	return event
}

func NewCalendarEvents(slots []Slot) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(slots))
	for _, slot := range slots {
		events = append(events, NewCalendarEvent(slot))
	}
	return events
}

type CalendarToolbar struct {
	Left   string `json:"left"`
	Center string `json:"center"`
	Right  string `json:"right"`
}

// CalendarOptions — конфигурация, которую страница передает виджету.
type CalendarOptions struct {
	InitialView   string          `json:"initialView"`
	Locale        string          `json:"locale"`
	FirstDay      int             `json:"firstDay"`
	HeaderToolbar CalendarToolbar `json:"headerToolbar"`
}

func DefaultCalendarOptions() CalendarOptions {
	return CalendarOptions{
		InitialView: "dayGridMonth",
		Locale:      "pl",
		FirstDay:    1,
		HeaderToolbar: CalendarToolbar{
			Left:   "prev,next today",
			Center: "title",
			Right:  "dayGridMonth,timeGridWeek,timeGridDay",
		},
	}
}
