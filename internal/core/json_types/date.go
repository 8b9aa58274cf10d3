package json_types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date — календарная дата без времени и таймзоны.
// Хранится как полночь UTC, чтобы сравнение и форматирование не зависели от зоны.
type Date struct {
	Date time.Time
}

// NewDate берет год, месяц и день из локальных полей t (в его собственной таймзоне).
func NewDate(t time.Time) Date {
	return Date{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate принимает "2006-01-02" или ISO дату со временем, время отбрасывается.
func ParseDate(str string) (Date, error) {
	// Дата — все до первого T
	if i := strings.IndexByte(str, 'T'); i >= 0 {
		str = str[:i]
	}
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(str), time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date: %v", err)
	}
	return Date{Date: parsed}, nil
}

func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Date.Format(DateLayout)
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}

func (d Date) Equal(other Date) bool {
	return d.Date.Equal(other.Date)
}

func (d Date) AddDays(days int) Date {
	return Date{Date: d.Date.AddDate(0, 0, days)}
}

// In возвращает начало дня в указанной таймзоне.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, loc)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}

	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(d.String())
}
