package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"time"

	"github.com/suchimauz/clinic-booking-controller/internal/config"
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

const (
	opListDoctors   = "listDoctors"
	opGetDoctor     = "getDoctor"
	opListSlots     = "listSlots"
	opCreateBooking = "createBooking"

	statusSuccess  = "success"
	outcomeSuccess = "success"

	maxResponseSize = 4 << 20
)

// envelope — общий конверт ответов API записи.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Terminy json.RawMessage `json:"terminy,omitempty"`
}

type BookingAPIAdapter struct {
	client  *http.Client
	baseURL string
	cookies []*http.Cookie
	metrics out.MetricsPort
	logger  out.LoggerPort
}

type Option func(*BookingAPIAdapter)

func WithHTTPClient(client *http.Client) Option {
	return func(a *BookingAPIAdapter) {
		a.client = client
	}
}

func WithMetrics(metrics out.MetricsPort) Option {
	return func(a *BookingAPIAdapter) {
		a.metrics = metrics
	}
}

// WithCookies — cookies сессии браузера, API закрыт авторизацией.
func WithCookies(cookies []*http.Cookie) Option {
	return func(a *BookingAPIAdapter) {
		a.cookies = cookies
	}
}

func NewBookingAPIAdapter(cfg *config.Config, logger out.LoggerPort, opts ...Option) *BookingAPIAdapter {
	a := &BookingAPIAdapter{
		client:  &http.Client{Timeout: cfg.BookingAPI.Timeout},
		baseURL: cfg.BookingAPI.URL,
		logger:  logger.WithModule("BookingAPIAdapter"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *BookingAPIAdapter) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	a.logger.Info("api.doctors.fetch", out.LogFields{})

	env, err := a.do(ctx, opListDoctors, http.MethodGet, "/api/lekarze", nil, nil)
	if err != nil {
		return nil, err
	}

	var doctors []domain.Doctor
	if err := decodeData(env.Data, &doctors); err != nil || doctors == nil {
		return nil, a.schemaError(opListDoctors, err, "data is not an array of doctors")
	}
	for _, d := range doctors {
		if d.ID.IsZero() {
			return nil, a.schemaError(opListDoctors, nil, "doctor without id")
		}
	}

	a.logger.Debug("api.doctors.fetch_success", out.LogFields{
		"count": len(doctors),
	})
	return doctors, nil
}

func (a *BookingAPIAdapter) GetDoctor(ctx context.Context, doctorID domain.DoctorID) (*domain.Doctor, error) {
	a.logger.Info("api.doctor.fetch", out.LogFields{
		"doctorId": doctorID,
	})

	path := fmt.Sprintf("/api/lekarze/%s", nurl.PathEscape(doctorID.String()))
	env, err := a.do(ctx, opGetDoctor, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var doctor *domain.Doctor
	if err := decodeData(env.Data, &doctor); err != nil || doctor == nil {
		return nil, a.schemaError(opGetDoctor, err, "data is not a doctor object")
	}
	if doctor.ID.IsZero() {
		return nil, a.schemaError(opGetDoctor, nil, "doctor without id")
	}

	a.logger.Debug("api.doctor.fetch_success", out.LogFields{
		"doctorId": doctor.ID,
	})
	return doctor, nil
}

func (a *BookingAPIAdapter) ListSlots(ctx context.Context, doctorID domain.DoctorID, dates domain.DateRange) ([]domain.Slot, error) {
	a.logger.Info("api.slots.fetch", out.LogFields{
		"doctorId": doctorID,
		"from":     dates.From.String(),
		"to":       dates.To.String(),
	})

	query := nurl.Values{}
	query.Set("lekarz_id", doctorID.String())
	query.Set("data_od", dates.From.String())
	query.Set("data_do", dates.To.String())

	env, err := a.do(ctx, opListSlots, http.MethodGet, "/api/terminy", query, nil)
	if err != nil {
		return nil, err
	}

	// Нет поля terminy — нет слотов
	slots := []domain.Slot{}
	if len(env.Terminy) > 0 && string(env.Terminy) != "null" {
		if err := json.Unmarshal(env.Terminy, &slots); err != nil {
			return nil, a.schemaError(opListSlots, err, "terminy is not an array of slots")
		}
	}
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return nil, a.schemaError(opListSlots, err, "invalid slot")
		}
	}

	a.logger.Debug("api.slots.fetch_success", out.LogFields{
		"doctorId": doctorID,
		"count":    len(slots),
	})
	return slots, nil
}

func (a *BookingAPIAdapter) CreateBooking(ctx context.Context, req domain.BookingRequest) (string, error) {
	a.logger.Info("api.booking.create", out.LogFields{
		"slotId":   req.SlotID,
		"doctorId": req.DoctorID,
	})

	body, err := json.Marshal(req)
	if err != nil {
		return "", &domain.GatewayError{Op: opCreateBooking, Kind: domain.FailureSchema, Err: err}
	}

	env, err := a.do(ctx, opCreateBooking, http.MethodPost, "/api/wizyty", nil, body)
	if err != nil {
		return "", err
	}

	a.logger.Info("api.booking.create_success", out.LogFields{
		"slotId":  req.SlotID,
		"message": env.Message,
	})
	return env.Message, nil
}

// do выполняет запрос и разбирает конверт. Ошибки — *domain.GatewayError.
func (a *BookingAPIAdapter) do(ctx context.Context, op, method, path string, query nurl.Values, body []byte) (env *envelope, err error) {
	started := time.Now()
	defer func() {
		a.observe(op, err, time.Since(started))
	}()

	url := a.baseURL + path
	if len(query) > 0 {
		url += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, a.fail(&domain.GatewayError{Op: op, Kind: domain.FailureNetwork, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, a.fail(&domain.GatewayError{Op: op, Kind: domain.FailureNetwork, Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, a.fail(&domain.GatewayError{Op: op, Kind: domain.FailureNetwork, Status: resp.StatusCode, Err: err})
	}

	env = &envelope{}
	decodeErr := json.Unmarshal(raw, env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gwErr := &domain.GatewayError{Op: op, Kind: domain.FailureHTTP, Status: resp.StatusCode}
		// Сервер может объяснить отказ в конверте и при ошибочном статусе
		if decodeErr == nil {
			gwErr.Message = env.Message
		}
		return nil, a.fail(gwErr)
	}

	if decodeErr != nil {
		return nil, a.fail(&domain.GatewayError{Op: op, Kind: domain.FailureSchema, Status: resp.StatusCode, Err: decodeErr})
	}

	if env.Status != statusSuccess {
		return nil, a.fail(&domain.GatewayError{
			Op:      op,
			Kind:    domain.FailureServerReported,
			Status:  resp.StatusCode,
			Message: env.Message,
		})
	}

	return env, nil
}

func (a *BookingAPIAdapter) fail(gwErr *domain.GatewayError) error {
	fields := out.LogFields{
		"op":   gwErr.Op,
		"kind": gwErr.Kind,
	}
	if gwErr.Status != 0 {
		fields["status"] = gwErr.Status
	}
	if gwErr.Message != "" {
		fields["message"] = gwErr.Message
	}
	if gwErr.Err != nil {
		fields["error"] = gwErr.Err.Error()
	}
	a.logger.Error("api.request_failed", fields)
	return gwErr
}

func (a *BookingAPIAdapter) schemaError(op string, err error, reason string) error {
	if err == nil {
		err = errors.New(reason)
	} else {
		err = fmt.Errorf("%s: %w", reason, err)
	}
	return a.fail(&domain.GatewayError{Op: op, Kind: domain.FailureSchema, Err: err})
}

func (a *BookingAPIAdapter) observe(op string, err error, duration time.Duration) {
	if a.metrics == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = string(domain.FailureOf(err))
	}
	a.metrics.ObserveRequest(op, outcome, duration)
}

func decodeData(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return errors.New("data is missing")
	}
	return json.Unmarshal(data, v)
}
