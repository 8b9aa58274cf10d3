package booking_service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
	"github.com/suchimauz/clinic-booking-controller/internal/utils"
)

var fragments = template.Must(template.New("fragments").Option("missingkey=error").Parse(`
{{define "alert"}}<div class="alert alert-{{.Kind}}">{{.Text}}</div>{{end}}

{{define "spinner"}}<div class="spinner-border text-primary" role="status"><span class="visually-hidden">{{.}}</span></div>{{end}}

{{define "doctorCards"}}{{range .}}<div class="col-md-4 mb-4">
  <div class="card doctor-card h-100" data-doctor-id="{{.ID}}">
    <div class="card-body">
      <h5 class="card-title">{{.Name}}</h5>
      <h6 class="card-subtitle mb-2 text-muted">{{.Specialization}}</h6>
      <p class="card-text">{{.Bio}}</p>
    </div>
  </div>
</div>
{{end}}{{end}}

{{define "doctorInfo"}}<div class="alert alert-info mb-4">
  <h6>Wybrany lekarz:</h6>
  <p class="mb-0">{{.Name}}<br><small class="text-muted">{{.Specialization}}</small></p>
</div>{{end}}

{{define "slotButtons"}}{{range .}}<button type="button" class="btn btn-outline-primary time-slot" data-index="{{.Index}}">{{.Start}} - {{.End}}</button> {{end}}{{end}}

{{define "summary"}}<div class="card">
  <div class="card-body">
    <h5 class="card-title">Podsumowanie wizyty</h5>
    <div class="mb-3"><strong>Lekarz:</strong> {{.Doctor}}</div>
    <div class="mb-3"><strong>Data:</strong> {{.Date}}</div>
    <div><strong>Godzina:</strong> {{.Start}} - {{.End}}</div>
  </div>
</div>{{end}}

{{define "busyButton"}}<span class="spinner-border spinner-border-sm" role="status" aria-hidden="true"></span> {{.}}{{end}}
`))

type alertView struct {
	Kind string
	Text string
}

type doctorView struct {
	ID             string
	Name           string
	Specialization string
	Bio            string
}

type slotButtonView struct {
	Index int
	Start string
	End   string
}

type summaryView struct {
	Doctor string
	Date   string
	Start  string
	End    string
}

func (s *Service) render(name string, data any) string {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("booking.render.failed", out.LogFields{
			"template": name,
			"error":    err.Error(),
		})
		return ""
	}
	return buf.String()
}

func (s *Service) renderAlert(kind, text string) string {
	return s.render("alert", alertView{Kind: kind, Text: text})
}

func (s *Service) renderDoctorCards(doctors []domain.Doctor) string {
	views := make([]doctorView, 0, len(doctors))
	for _, d := range doctors {
		view := doctorView{
			ID:             d.ID.String(),
			Name:           d.FullName(),
			Specialization: d.Specialization,
			Bio:            d.Bio,
		}
		if view.Specialization == "" {
			view.Specialization = labelDefaultSpecialty
		}
		if view.Bio == "" {
			view.Bio = labelNoBio
		}
		views = append(views, view)
	}
	return s.render("doctorCards", views)
}

func (s *Service) renderDoctorInfo(d domain.Doctor) string {
	return s.render("doctorInfo", doctorView{
		ID:             d.ID.String(),
		Name:           d.FullName(),
		Specialization: d.Specialization,
	})
}

// Кнопки только для свободных слотов, индекс — позиция в списке дня, порядок как у сервера.
func (s *Service) renderSlotButtons(slots []domain.Slot) (string, int) {
	views := make([]slotButtonView, 0, len(slots))
	for i, slot := range slots {
		if !slot.IsFree() {
			continue
		}
		views = append(views, slotButtonView{Index: i, Start: slot.Start.Short(), End: slot.End.Short()})
	}
	if len(views) == 0 {
		return "", 0
	}
	return s.render("slotButtons", views), len(views)
}

func (s *Service) renderSummary(state domain.SessionState) string {
	return s.render("summary", summaryView{
		Doctor: state.Doctor.FullName(),
		Date:   utils.LongDatePL(*state.Date),
		Start:  state.Slot.Start.Short(),
		End:    state.Slot.End.Short(),
	})
}

func doctorCardSelector(doctorID domain.DoctorID) string {
	return fmt.Sprintf(`%s[data-doctor-id=%q]`, domain.SelectorDoctorCards, doctorID.String())
}

func timeSlotSelector(index int) string {
	return fmt.Sprintf(`%s[data-index="%d"]`, domain.SelectorTimeSlots, index)
}
