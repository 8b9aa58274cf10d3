package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-booking-controller/internal/config"
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Cookie string
}

type observation struct {
	op      string
	outcome string
}

type fakeMetrics struct {
	requests []observation
}

func (m *fakeMetrics) ObserveRequest(op, outcome string, _ time.Duration) {
	m.requests = append(m.requests, observation{op: op, outcome: outcome})
}
func (m *fakeMetrics) ObserveBooking(string) {}
func (m *fakeMetrics) SessionOpened()        {}
func (m *fakeMetrics) SessionClosed()        {}

func newTestAdapter(t *testing.T, status int, body string, opts ...Option) (*BookingAPIAdapter, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(raw),
			Cookie: r.Header.Get("Cookie"),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.BookingAPI.URL = srv.URL
	cfg.BookingAPI.Timeout = 5 * time.Second
	return NewBookingAPIAdapter(cfg, logger.NewNopLogger(), opts...), &requests
}

func requireKind(t *testing.T, err error, kind domain.FailureKind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, domain.FailureOf(err))
}

func TestListDoctors(t *testing.T) {
	adapter, requests := newTestAdapter(t, http.StatusOK,
		`{"status":"success","data":[{"id":7,"imie":"Anna","nazwisko":"Kowalska"},{"id":"abc","tytul":"dr","imie":"Jan","nazwisko":"Nowak","specjalizacja":"Kardiolog"}]}`)

	doctors, err := adapter.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "7", doctors[0].ID.String())
	assert.Equal(t, "Anna Kowalska", doctors[0].FullName())
	assert.Equal(t, "dr Jan Nowak", doctors[1].FullName())
	assert.Equal(t, "Kardiolog", doctors[1].Specialization)

	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodGet, (*requests)[0].Method)
	assert.Equal(t, "/api/lekarze", (*requests)[0].Path)
}

func TestListDoctorsFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   domain.FailureKind
	}{
		{"server reported", http.StatusOK, `{"status":"error","message":"Brak uprawnień"}`, domain.FailureServerReported},
		{"null data", http.StatusOK, `{"status":"success","data":null}`, domain.FailureSchema},
		{"missing data", http.StatusOK, `{"status":"success"}`, domain.FailureSchema},
		{"object instead of array", http.StatusOK, `{"status":"success","data":{"id":1}}`, domain.FailureSchema},
		{"not json", http.StatusOK, `<html>login</html>`, domain.FailureSchema},
		{"http status", http.StatusInternalServerError, `oops`, domain.FailureHTTP},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter, _ := newTestAdapter(t, tc.status, tc.body)
			_, err := adapter.ListDoctors(context.Background())
			requireKind(t, err, tc.kind)
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	cfg := &config.Config{}
	cfg.BookingAPI.URL = url
	cfg.BookingAPI.Timeout = time.Second
	adapter := NewBookingAPIAdapter(cfg, logger.NewNopLogger())

	_, err := adapter.ListDoctors(context.Background())
	requireKind(t, err, domain.FailureNetwork)
}

func TestGetDoctor(t *testing.T) {
	adapter, requests := newTestAdapter(t, http.StatusOK,
		`{"status":"success","data":{"id":7,"imie":"Anna","nazwisko":"Kowalska","opis":"Pediatra"}}`)

	doctor, err := adapter.GetDoctor(context.Background(), json_types.NewID("7"))
	require.NoError(t, err)
	assert.Equal(t, "7", doctor.ID.String())
	assert.Equal(t, "Pediatra", doctor.Bio)
	assert.Equal(t, "/api/lekarze/7", (*requests)[0].Path)
}

func TestGetDoctorNullData(t *testing.T) {
	adapter, _ := newTestAdapter(t, http.StatusOK, `{"status":"success","data":null}`)

	_, err := adapter.GetDoctor(context.Background(), json_types.NewID("7"))
	requireKind(t, err, domain.FailureSchema)
}

func TestListSlots(t *testing.T) {
	adapter, requests := newTestAdapter(t, http.StatusOK,
		`{"status":"success","terminy":[
			{"id":42,"data":"2099-06-15T00:00:00","godzina_od":"10:00","godzina_do":"10:30","status":"wolny"},
			{"id":43,"data":"2099-06-15","godzina_od":"10:30:00","godzina_do":"11:00:00","status":"zajety"}
		]}`)

	dates := domain.NewDateRange(json_types.MustParseDate("2099-06-01"), json_types.MustParseDate("2099-06-30"))
	slots, err := adapter.ListSlots(context.Background(), json_types.NewID("7"), dates)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "2099-06-15", slots[0].Date.String())
	assert.True(t, slots[0].IsFree())
	assert.Equal(t, "10:30", slots[1].Start.Short())
	assert.False(t, slots[1].IsFree())

	assert.Equal(t, "/api/terminy", (*requests)[0].Path)
	assert.Equal(t, "data_do=2099-06-30&data_od=2099-06-01&lekarz_id=7", (*requests)[0].Query)
}

func TestListSlotsMissingTerminyIsEmpty(t *testing.T) {
	adapter, _ := newTestAdapter(t, http.StatusOK, `{"status":"success"}`)

	day := domain.SingleDay(json_types.MustParseDate("2099-06-15"))
	slots, err := adapter.ListSlots(context.Background(), json_types.NewID("7"), day)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestListSlotsInvalidSlot(t *testing.T) {
	adapter, _ := newTestAdapter(t, http.StatusOK,
		`{"status":"success","terminy":[{"id":1,"data":"2099-06-15","godzina_od":"11:00","godzina_do":"10:00","status":"wolny"}]}`)

	day := domain.SingleDay(json_types.MustParseDate("2099-06-15"))
	_, err := adapter.ListSlots(context.Background(), json_types.NewID("7"), day)
	requireKind(t, err, domain.FailureSchema)
}

func TestCreateBooking(t *testing.T) {
	adapter, requests := newTestAdapter(t, http.StatusOK, `{"status":"success","message":"OK"}`)

	note := "Test"
	message, err := adapter.CreateBooking(context.Background(), domain.BookingRequest{
		SlotID:   json_types.NewID("42"),
		DoctorID: json_types.NewID("7"),
		Note:     &note,
	})
	require.NoError(t, err)
	assert.Equal(t, "OK", message)

	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/wizyty", req.Path)
	assert.JSONEq(t, `{"termin_id":42,"lekarz_id":7,"opis":"Test"}`, req.Body)
}

func TestCreateBookingServerReported(t *testing.T) {
	adapter, _ := newTestAdapter(t, http.StatusOK, `{"status":"error","message":"Slot taken"}`)

	_, err := adapter.CreateBooking(context.Background(), domain.BookingRequest{
		SlotID:   json_types.NewID("42"),
		DoctorID: json_types.NewID("7"),
	})
	requireKind(t, err, domain.FailureServerReported)
	assert.Equal(t, "Slot taken", domain.ServerMessage(err))
}

func TestCreateBookingHTTPErrorKeepsMessage(t *testing.T) {
	adapter, _ := newTestAdapter(t, http.StatusConflict, `{"status":"error","message":"Termin jest już zajęty"}`)

	_, err := adapter.CreateBooking(context.Background(), domain.BookingRequest{
		SlotID:   json_types.NewID("42"),
		DoctorID: json_types.NewID("7"),
	})
	requireKind(t, err, domain.FailureHTTP)
	assert.Equal(t, "Termin jest już zajęty", domain.ServerMessage(err))

	var gwErr *domain.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusConflict, gwErr.Status)
}

func TestCookiesAreForwarded(t *testing.T) {
	adapter, requests := newTestAdapter(t, http.StatusOK, `{"status":"success","data":[]}`,
		WithCookies([]*http.Cookie{{Name: "session", Value: "s3cr3t"}}))

	_, err := adapter.ListDoctors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session=s3cr3t", (*requests)[0].Cookie)
}

func TestMetricsObserved(t *testing.T) {
	metrics := &fakeMetrics{}
	adapter, _ := newTestAdapter(t, http.StatusOK, `{"status":"error"}`, WithMetrics(metrics))

	_, err := adapter.ListDoctors(context.Background())
	require.Error(t, err)
	assert.Equal(t, []observation{{op: opListDoctors, outcome: "serverReported"}}, metrics.requests)
}

func TestEnvelopeShape(t *testing.T) {
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(`{"status":"success","terminy":[]}`), &env))
	assert.Equal(t, statusSuccess, env.Status)
	assert.Equal(t, "[]", string(env.Terminy))
	assert.Empty(t, env.Data)
}
