package domain

// ElementID — id контейнера на странице записи.
type ElementID string

const (
	ElementDoctorsList        ElementID = "doctorsList"
	ElementSelectDoctorStep   ElementID = "selectDoctorStep"
	ElementCalendarStep       ElementID = "calendarStep"
	ElementAppointmentDetails ElementID = "appointmentDetails"
	ElementCalendar           ElementID = "calendar"
	ElementAvailableTimes     ElementID = "availableTimes"
	ElementAppointmentNotes   ElementID = "appointmentNotes"
	ElementAppointmentSummary ElementID = "appointmentSummary"
	ElementDoctorInfo         ElementID = "doctorInfo"
	ElementChangeDoctor       ElementID = "changeDoctor"
	ElementBackToCalendar     ElementID = "backToCalendar"
	ElementConfirmAppointment ElementID = "confirmAppointment"
	ElementSuccessMessage     ElementID = "successMessage"
	ElementSuccessModal       ElementID = "successModal"
)

// Селекторы групп элементов, которые рендерит контроллер.
const (
	SelectorDoctorCards = ".doctor-card"
	SelectorTimeSlots   = ".time-slot"
)
