package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
)

type countingAPI struct {
	listDoctors int
	getDoctor   int
	listSlots   int
	err         error
}

func (a *countingAPI) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	a.listDoctors++
	if a.err != nil {
		return nil, a.err
	}
	return testDoctors(), nil
}

func (a *countingAPI) GetDoctor(ctx context.Context, id domain.DoctorID) (*domain.Doctor, error) {
	a.getDoctor++
	if a.err != nil {
		return nil, a.err
	}
	return &domain.Doctor{ID: id, FirstName: "Ewa", LastName: "Zielińska"}, nil
}

func (a *countingAPI) ListSlots(ctx context.Context, id domain.DoctorID, dates domain.DateRange) ([]domain.Slot, error) {
	a.listSlots++
	return []domain.Slot{}, nil
}

func (a *countingAPI) CreateBooking(ctx context.Context, req domain.BookingRequest) (string, error) {
	return "OK", nil
}

func newCachedAPI(t *testing.T) (*CachedBookingAPI, *countingAPI) {
	t.Helper()
	c, err := NewLRUCacheAdapter(10, time.Minute, logger.NewNopLogger())
	require.NoError(t, err)
	next := &countingAPI{}
	return NewCachedBookingAPI(next, c, logger.NewNopLogger()), next
}

func TestCachedAPIServesDoctorsFromCache(t *testing.T) {
	ctx := context.Background()
	api, next := newCachedAPI(t)

	for i := 0; i < 3; i++ {
		doctors, err := api.ListDoctors(ctx)
		require.NoError(t, err)
		assert.Len(t, doctors, 2)
	}
	assert.Equal(t, 1, next.listDoctors)

	// Карточка уже есть после списка
	_, err := api.GetDoctor(ctx, json_types.NewID("7"))
	require.NoError(t, err)
	assert.Equal(t, 0, next.getDoctor)

	_, err = api.GetDoctor(ctx, json_types.NewID("99"))
	require.NoError(t, err)
	_, err = api.GetDoctor(ctx, json_types.NewID("99"))
	require.NoError(t, err)
	assert.Equal(t, 1, next.getDoctor)
}

func TestCachedAPINeverCachesSlots(t *testing.T) {
	ctx := context.Background()
	api, next := newCachedAPI(t)
	day := domain.SingleDay(json_types.MustParseDate("2099-06-15"))

	_, _ = api.ListSlots(ctx, json_types.NewID("7"), day)
	_, _ = api.ListSlots(ctx, json_types.NewID("7"), day)

	assert.Equal(t, 2, next.listSlots)
}

func TestCachedAPIDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	api, next := newCachedAPI(t)
	next.err = &domain.GatewayError{Op: "listDoctors", Kind: domain.FailureNetwork}

	_, err := api.ListDoctors(ctx)
	require.Error(t, err)

	next.err = nil
	_, err = api.ListDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next.listDoctors)
}
