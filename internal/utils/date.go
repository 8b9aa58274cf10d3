package utils

import (
	"fmt"
	"time"

	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
)

// ParseDate парсит дату в RFC3339, дату со временем без таймзоны или дату без времени.
// Значения без таймзоны трактуются в loc.
func ParseDate(str string, loc *time.Location) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err == nil {
		return parsedDate.In(loc), nil
	}
	parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, loc)
	if err == nil {
		return parsedDate, nil
	}
	parsedDate, err = time.ParseInLocation("2006-01-02", str, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
	}
	return parsedDate, nil
}

// LocalDate — календарный день момента t в зоне loc.
func LocalDate(t time.Time, loc *time.Location) json_types.Date {
	return json_types.NewDate(t.In(loc))
}

// IsPastDay сообщает, что день d строго раньше текущего дня в зоне loc.
func IsPastDay(d json_types.Date, now time.Time, loc *time.Location) bool {
	return d.Before(LocalDate(now, loc))
}

var polishWeekdays = [...]string{
	time.Sunday:    "niedziela",
	time.Monday:    "poniedziałek",
	time.Tuesday:   "wtorek",
	time.Wednesday: "środa",
	time.Thursday:  "czwartek",
	time.Friday:    "piątek",
	time.Saturday:  "sobota",
}

// Месяцы в родительном падеже, как в "15 czerwca 2099".
var polishMonthsGenitive = [...]string{
	time.January:   "stycznia",
	time.February:  "lutego",
	time.March:     "marca",
	time.April:     "kwietnia",
	time.May:       "maja",
	time.June:      "czerwca",
	time.July:      "lipca",
	time.August:    "sierpnia",
	time.September: "września",
	time.October:   "października",
	time.November:  "listopada",
	time.December:  "grudnia",
}

// LongDatePL — полная польская запись даты: "poniedziałek, 15 czerwca 2099".
func LongDatePL(d json_types.Date) string {
	t := d.Date
	return fmt.Sprintf("%s, %d %s %d", polishWeekdays[t.Weekday()], t.Day(), polishMonthsGenitive[t.Month()], t.Year())
}
