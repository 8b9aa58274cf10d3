package domain

type BookingState string

const (
	BookingStateLoading       BookingState = "loading"
	BookingStatePickingDoctor BookingState = "picking_doctor"
	BookingStatePickingSlot   BookingState = "picking_slot"
	BookingStateSlotPicked    BookingState = "slot_picked"
	BookingStateSubmitting    BookingState = "submitting"
	BookingStateDone          BookingState = "done"
	BookingStateError         BookingState = "error"
)

// BookingRequest — тело POST /api/wizyty.
type BookingRequest struct {
	SlotID   SlotID   `json:"termin_id"`
	DoctorID DoctorID `json:"lekarz_id"`
	Note     *string  `json:"opis"`
}
