package json_types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID — непрозрачный идентификатор сервера. Сервер отдает его числом или строкой,
// обратно он уходит в той же форме.
type ID struct {
	raw     string
	numeric bool
}

// NewID строит идентификатор из строки, числовые строки кодируются как число.
func NewID(raw string) ID {
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ID{raw: raw, numeric: true}
	}
	return ID{raw: raw}
}

func (id ID) String() string {
	return id.raw
}

func (id ID) IsZero() bool {
	return id.raw == ""
}

func (id ID) Equal(other ID) bool {
	return id.raw == other.raw
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ID{}
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("failed to parse id: %v", err)
		}
		*id = ID{raw: str}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("failed to parse id: %v", err)
	}
	*id = ID{raw: num.String(), numeric: true}
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}
