package json_types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Time — время суток "HH:MM" или "HH:MM:SS".
type Time struct {
	Time time.Time
}

func ParseTime(str string) (Time, error) {
	str = strings.TrimSpace(str)
	layout := "15:04"
	if strings.Count(str, ":") == 2 {
		layout = "15:04:05"
	}
	parsed, err := time.Parse(layout, str)
	if err != nil {
		return Time{}, fmt.Errorf("failed to parse time: %v", err)
	}
	return Time{Time: parsed}, nil
}

func MustParseTime(str string) Time {
	t, err := ParseTime(str)
	if err != nil {
		panic(err)
	}
	return t
}

// Short — формат для кнопок и сводки.
func (t Time) Short() string {
	return t.Time.Format("15:04")
}

// Clock — формат для событий календаря.
func (t Time) Clock() string {
	return t.Time.Format("15:04:05")
}

func (t Time) Before(other Time) bool {
	return t.Time.Before(other.Time)
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse time: %v", err)
	}
	parsed, err := ParseTime(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Short())
}
