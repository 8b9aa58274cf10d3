package domain

import (
	"fmt"

	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
)

type SlotID = json_types.ID

type SlotStatus string

const (
	SlotStatusFree  SlotStatus = "wolny"
	SlotStatusTaken SlotStatus = "zajety"
)

type Slot struct {
	ID     SlotID          `json:"id"`
	Date   json_types.Date `json:"data"`
	Start  json_types.Time `json:"godzina_od"`
	End    json_types.Time `json:"godzina_do"`
	Status SlotStatus      `json:"status"`
}

func (s Slot) IsFree() bool {
	return s.Status == SlotStatusFree
}

// Validate проверяет инварианты слота, пришедшего с сервера.
func (s Slot) Validate() error {
	if s.ID.IsZero() {
		return fmt.Errorf("slot has no id")
	}
	if s.Date.IsZero() {
		return fmt.Errorf("slot %s has no date", s.ID)
	}
	if !s.Start.Before(s.End) {
		return fmt.Errorf("slot %s: start %s is not before end %s", s.ID, s.Start.Short(), s.End.Short())
	}
	if s.Status != SlotStatusFree && s.Status != SlotStatusTaken {
		return fmt.Errorf("slot %s: unknown status %q", s.ID, s.Status)
	}
	return nil
}

// DateRange — включительный диапазон дат запроса слотов.
type DateRange struct {
	From json_types.Date
	To   json_types.Date
}

func NewDateRange(from, to json_types.Date) DateRange {
	return DateRange{From: from, To: to}
}

func SingleDay(d json_types.Date) DateRange {
	return DateRange{From: d, To: d}
}

func (r DateRange) Equal(other DateRange) bool {
	return r.From.Equal(other.From) && r.To.Equal(other.To)
}

func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (r DateRange) String() string {
	return r.From.String() + ".." + r.To.String()
}
