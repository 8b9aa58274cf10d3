package domain

import (
	"fmt"

	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
)

// SessionState — текущий выбор пациента. Владелец один — оркестратор записи.
type SessionState struct {
	Doctor       *Doctor
	Date         *json_types.Date
	Slot         *Slot
	SlotsForDate []Slot
}

func (s *SessionState) Reset() {
	s.Doctor = nil
	s.Date = nil
	s.Slot = nil
	s.SlotsForDate = nil
}

func (s SessionState) IsEmpty() bool {
	return s.Doctor == nil && s.Date == nil && s.Slot == nil && len(s.SlotsForDate) == 0
}

// SelectDate ставит новую дату и сбрасывает выбранный слот и список слотов дня.
func (s *SessionState) SelectDate(d json_types.Date) {
	s.Date = &d
	s.Slot = nil
	s.SlotsForDate = nil
}

// SelectSlot выбирает свободный слот из списка текущего дня.
func (s *SessionState) SelectSlot(index int) (*Slot, error) {
	if s.Doctor == nil || s.Date == nil {
		return nil, fmt.Errorf("slot selection requires doctor and date")
	}
	if index < 0 || index >= len(s.SlotsForDate) {
		return nil, fmt.Errorf("slot index %d out of range [0,%d)", index, len(s.SlotsForDate))
	}
	slot := s.SlotsForDate[index]
	if !slot.IsFree() {
		return nil, fmt.Errorf("slot %s is not free", slot.ID)
	}
	s.Slot = &slot
	return s.Slot, nil
}

// IsComplete — выбраны врач, дата и слот.
func (s SessionState) IsComplete() bool {
	return s.Doctor != nil && s.Date != nil && s.Slot != nil
}
