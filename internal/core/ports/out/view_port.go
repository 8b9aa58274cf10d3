package out

import "github.com/suchimauz/clinic-booking-controller/internal/core/domain"

// ViewPort — подготовленные контейнеры страницы. Контроллер только заполняет их.
type ViewPort interface {
	SetHTML(id domain.ElementID, html string)
	SetText(id domain.ElementID, text string)
	SetValue(id domain.ElementID, value string)
	Show(id domain.ElementID)
	Hide(id domain.ElementID)
	SetDisabled(id domain.ElementID, disabled bool)
	AddClass(selector string, class string)
	RemoveClass(selector string, class string)
	Alert(message string)
	ShowModal(id domain.ElementID)
	// ConsoleError пишет в консоль разработчика в браузере.
	ConsoleError(message string, fields LogFields)
}
