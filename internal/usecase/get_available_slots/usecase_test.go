package get_available_slots_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	scheduleRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/schedule"
	"github.com/nordbooking/NB-BookingCore/internal/integrations/tenantservice"
	"github.com/nordbooking/NB-BookingCore/internal/usecase/get_available_slots"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	override  *domain.DateOverride
	recurring []*domain.RecurringSlot
}

func (f *fakeScheduleRepo) GetOverrideByDate(_ context.Context, _ int64, _ time.Time) (*domain.DateOverride, error) {
	if f.override == nil {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return f.override, nil
}

func (f *fakeScheduleRepo) GetRecurringByDay(_ context.Context, _ int64, _ int) ([]*domain.RecurringSlot, error) {
	return f.recurring, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookingRepo) GetByTenantWithFilter(_ context.Context, _ domain.TenantBookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, nil
}

type fakeTenantClient struct {
	err error
}

func (f *fakeTenantClient) GetTenant(_ context.Context, tenantID int64) (*tenantservice.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tenantservice.Tenant{ID: tenantID, IsActive: true}, nil
}

type fakeCache struct {
	data map[string][]domain.TimeSlot
	sets int
}

func cacheKey(tenantID int64, date time.Time) string {
	return date.Format(domain.DateFormat)
}

func (f *fakeCache) Get(_ context.Context, tenantID int64, date time.Time) ([]domain.TimeSlot, bool) {
	slots, ok := f.data[cacheKey(tenantID, date)]
	return slots, ok
}

func (f *fakeCache) Set(_ context.Context, tenantID int64, date time.Time, slots []domain.TimeSlot) {
	if f.data == nil {
		f.data = make(map[string][]domain.TimeSlot)
	}
	f.data[cacheKey(tenantID, date)] = slots
	f.sets++
}

func weekdaySlots() []*domain.RecurringSlot {
	return []*domain.RecurringSlot{
		{TenantID: 42, StartTime: "09:00", EndTime: "11:00", Capacity: 2, IsActive: true},
		{TenantID: 42, StartTime: "11:00", EndTime: "13:00", Capacity: 1, IsActive: true},
	}
}

func TestExecute_ResolvesDayWithLoad(t *testing.T) {
	schedule := &fakeScheduleRepo{recurring: weekdaySlots()}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "11:00", EndTime: "13:00", Status: domain.StatusConfirmed},
	}}
	uc := get_available_slots.NewUseCase(schedule, bookings, &fakeTenantClient{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &get_available_slots.Request{
		TenantID: 42,
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 2, resp.Slots[0].Remaining)
	assert.True(t, resp.Slots[0].Available)

	// Полностью занятый слот присутствует в ответе как fully booked
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[1].StartTime)
	assert.Equal(t, 0, resp.Slots[1].Remaining)
	assert.False(t, resp.Slots[1].Available)
}

func TestExecute_UnavailableOverrideReturnsEmptyDay(t *testing.T) {
	schedule := &fakeScheduleRepo{
		override:  &domain.DateOverride{IsUnavailable: true},
		recurring: weekdaySlots(),
	}
	bookings := &fakeBookingRepo{}
	uc := get_available_slots.NewUseCase(schedule, bookings, &fakeTenantClient{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &get_available_slots.Request{
		TenantID: 42,
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	// Закрытый день не требует чтения занятости
	assert.Equal(t, 0, bookings.calls)
}

func TestExecute_CustomOverrideReplacesTemplate(t *testing.T) {
	schedule := &fakeScheduleRepo{
		override: &domain.DateOverride{
			StartTime: "14:00",
			EndTime:   "18:00",
			Capacity:  3,
		},
		recurring: weekdaySlots(),
	}
	uc := get_available_slots.NewUseCase(schedule, &fakeBookingRepo{}, &fakeTenantClient{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &get_available_slots.Request{
		TenantID: 42,
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 3, resp.Slots[0].Capacity)
}

func TestExecute_TenantNotFound(t *testing.T) {
	uc := get_available_slots.NewUseCase(
		&fakeScheduleRepo{}, &fakeBookingRepo{},
		&fakeTenantClient{err: tenantservice.ErrTenantNotFound},
		nil, nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &get_available_slots.Request{
		TenantID: 42,
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, get_available_slots.ErrTenantNotFound)
}

func TestExecute_CacheHitSkipsResolution(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	cache := &fakeCache{data: map[string][]domain.TimeSlot{
		cacheKey(42, date): {{StartTime: "09:00", EndTime: "11:00", Capacity: 2, Remaining: 1}},
	}}
	bookings := &fakeBookingRepo{}
	uc := get_available_slots.NewUseCase(&fakeScheduleRepo{}, bookings, &fakeTenantClient{}, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &get_available_slots.Request{TenantID: 42, Date: date})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 1, resp.Slots[0].Remaining)
	assert.Equal(t, 0, bookings.calls)
	assert.Equal(t, 0, cache.sets)
}

func TestExecute_CacheMissPopulatesCache(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	cache := &fakeCache{}
	uc := get_available_slots.NewUseCase(
		&fakeScheduleRepo{recurring: weekdaySlots()},
		&fakeBookingRepo{},
		&fakeTenantClient{},
		cache,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &get_available_slots.Request{TenantID: 42, Date: date})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
	assert.Equal(t, 1, cache.sets)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := get_available_slots.NewUseCase(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeTenantClient{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &get_available_slots.Request{TenantID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, get_available_slots.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &get_available_slots.Request{TenantID: 42})
	assert.ErrorIs(t, err, get_available_slots.ErrInvalidDate)
}
