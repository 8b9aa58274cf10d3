package domain

import (
	"strings"

	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
)

type DoctorID = json_types.ID

type Doctor struct {
	ID             DoctorID `json:"id"`
	Title          string   `json:"tytul,omitempty"`
	FirstName      string   `json:"imie"`
	LastName       string   `json:"nazwisko"`
	Specialization string   `json:"specjalizacja,omitempty"`
	Bio            string   `json:"opis,omitempty"`
}

// FullName — "tytuł imię nazwisko", без пустого титула.
func (d Doctor) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Title, d.FirstName, d.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
