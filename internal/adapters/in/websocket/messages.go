package websocket

import (
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

// Типы сообщений браузера.
const (
	MsgInit           = "init"
	MsgDoctorSelect   = "doctor.select"
	MsgCalendarEvents = "calendar.events"
	MsgDateSelect     = "date.select"
	MsgSlotSelect     = "slot.select"
	MsgDetailsBack    = "details.back"
	MsgBookingConfirm = "booking.confirm"
	MsgDoctorChange   = "doctor.change"
)

// Команды странице.
const (
	OpHTML            = "html"
	OpText            = "text"
	OpValue           = "value"
	OpShow            = "show"
	OpHide            = "hide"
	OpDisabled        = "disabled"
	OpClassAdd        = "class.add"
	OpClassRemove     = "class.remove"
	OpAlert           = "alert"
	OpModal           = "modal"
	OpConsole         = "console"
	OpCalendarRefetch = "calendar.refetch"
	OpCalendarEvents  = "calendar.events"
	OpCalendarFailure = "calendar.failure"
	OpCalendarOptions = "calendar.options"
)

// ClientMessage — событие от скрипта-моста на странице.
type ClientMessage struct {
	Type      string        `json:"type"`
	Timezone  string        `json:"timezone,omitempty"`
	DoctorID  json_types.ID `json:"doctorId"`
	RequestID string        `json:"requestId,omitempty"`
	Start     string        `json:"start,omitempty"`
	End       string        `json:"end,omitempty"`
	Date      string        `json:"date,omitempty"`
	Index     *int          `json:"index,omitempty"`
	Note      string        `json:"note,omitempty"`
}

// Command — одна DOM операция или ответ календарю. Пустые поля страница трактует как "".
type Command struct {
	Op        string                  `json:"op"`
	ID        domain.ElementID        `json:"id,omitempty"`
	Selector  string                  `json:"selector,omitempty"`
	Class     string                  `json:"class,omitempty"`
	Content   string                  `json:"content,omitempty"`
	Disabled  *bool                   `json:"disabled,omitempty"`
	Message   string                  `json:"message,omitempty"`
	Fields    out.LogFields           `json:"fields,omitempty"`
	RequestID string                  `json:"requestId,omitempty"`
	Events    []domain.CalendarEvent  `json:"events,omitempty"`
	Options   *domain.CalendarOptions `json:"options,omitempty"`
}
