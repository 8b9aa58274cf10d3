package domain

// Step — одна из трех взаимоисключающих панелей страницы.
type Step int

const (
	StepDoctorSelection Step = iota
	StepCalendar
	StepDetails
)

func (s Step) String() string {
	switch s {
	case StepDoctorSelection:
		return "doctor_selection"
	case StepCalendar:
		return "calendar"
	case StepDetails:
		return "details"
	}
	return "unknown"
}

// Element возвращает контейнер шага на странице.
func (s Step) Element() ElementID {
	switch s {
	case StepCalendar:
		return ElementCalendarStep
	case StepDetails:
		return ElementAppointmentDetails
	}
	return ElementSelectDoctorStep
}

var Steps = []Step{StepDoctorSelection, StepCalendar, StepDetails}

type StepEvent string

const (
	StepEventDoctorSelected   StepEvent = "doctorSelected"
	StepEventBackToCalendar   StepEvent = "backToCalendar"
	StepEventSlotSelected     StepEvent = "slotSelected"
	StepEventBookingSucceeded StepEvent = "bookingSucceeded"
	StepEventBackToDoctors    StepEvent = "backToDoctors"
)
