package create_booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	discountRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/discount"
	scheduleRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/schedule"
	"github.com/nordbooking/NB-BookingCore/internal/integrations/tenantservice"
	"github.com/nordbooking/NB-BookingCore/internal/usecase/create_booking"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeCatalogRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeCatalogRepo) GetServiceWithOptions(_ context.Context, _, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeDiscountRepo struct {
	discount  *domain.DiscountCode
	getErr    error
	redeemErr error
	redeemed  []int64
}

func (f *fakeDiscountRepo) GetByCode(_ context.Context, _ int64, _ string) (*domain.DiscountCode, error) {
	return f.discount, f.getErr
}

func (f *fakeDiscountRepo) Redeem(_ context.Context, id int64) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	f.redeemed = append(f.redeemed, id)
	return nil
}

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
	existing []*domain.Booking
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	stored := *booking
	stored.ID = 1001
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = &stored
	return &stored, nil
}

func (f *fakeBookingRepo) GetByTenantWithFilter(_ context.Context, _ domain.TenantBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeTenantClient struct {
	err error
}

func (f *fakeTenantClient) GetTenant(_ context.Context, tenantID int64) (*tenantservice.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tenantservice.Tenant{ID: tenantID, BusinessName: "Shiny Homes", IsActive: true}, nil
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeCache struct {
	invalidated []time.Time
}

func (f *fakeCache) Invalidate(_ context.Context, _ int64, date time.Time) {
	f.invalidated = append(f.invalidated, date)
}

type fixture struct {
	catalog  *fakeCatalogRepo
	discount *fakeDiscountRepo
	schedule *fakeScheduleRepo
	booking  *fakeBookingRepo
	tenant   *fakeTenantClient
	tx       *fakeTxManager
	cache    *fakeCache
	uc       *create_booking.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		catalog: &fakeCatalogRepo{service: &domain.Service{
			ID:              1,
			TenantID:        42,
			Name:            "Deep cleaning",
			BasePrice:       money.FromUnits(100),
			DurationMinutes: 120,
			IsActive:        true,
		}},
		discount: &fakeDiscountRepo{getErr: discountRepo.ErrDiscountNotFound},
		schedule: &fakeScheduleRepo{recurring: []*domain.RecurringSlot{{
			TenantID:  42,
			StartTime: "10:00",
			EndTime:   "12:00",
			Capacity:  1,
			IsActive:  true,
		}}},
		booking: &fakeBookingRepo{},
		tenant:  &fakeTenantClient{},
		tx:      &fakeTxManager{},
		cache:   &fakeCache{},
	}
	f.uc = create_booking.NewUseCase(
		f.catalog, f.discount, f.schedule, f.booking, f.tenant, f.tx, f.cache, nopLogger{},
	)
	return f
}

func validRequest() *create_booking.Request {
	return &create_booking.Request{
		TenantID:      42,
		ServiceID:     1,
		Date:          time.Now().AddDate(0, 0, 2),
		StartTime:     types.TimeString("10:00"),
		Frequency:     domain.FrequencyOneTime,
		CustomerName:  "Anna Berg",
		CustomerEmail: "anna@example.com",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(1001), resp.Booking.ID)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, types.TimeString("12:00"), resp.Booking.EndTime)
	assert.Equal(t, "Deep cleaning", resp.Booking.ServiceName)
	assert.Equal(t, money.FromUnits(100), resp.Booking.FinalTotal)
	assert.Equal(t, 1, f.tx.calls)
	// Кэш даты сброшен после коммита
	assert.Len(t, f.cache.invalidated, 1)
}

func TestExecute_SlotFull(t *testing.T) {
	f := newFixture()
	f.booking.existing = []*domain.Booking{{
		StartTime: "10:00",
		EndTime:   "12:00",
		Status:    domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, create_booking.ErrSlotUnavailable)
	assert.Nil(t, f.booking.created)
	assert.Empty(t, f.cache.invalidated)
}

func TestExecute_CancelledBookingDoesNotBlockSlot(t *testing.T) {
	f := newFixture()
	f.booking.existing = []*domain.Booking{{
		StartTime: "10:00",
		EndTime:   "12:00",
		Status:    domain.StatusCancelledByCustomer,
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotNil(t, resp.Booking)
}

func TestExecute_SlotNotInSchedule(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = types.TimeString("15:00")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, create_booking.ErrSlotNotFound)
}

func TestExecute_UnavailableOverrideClosesDay(t *testing.T) {
	f := newFixture()
	f.schedule.override = &domain.DateOverride{IsUnavailable: true}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, create_booking.ErrSlotNotFound)
}

func TestExecute_CustomOverrideReplacesRecurring(t *testing.T) {
	f := newFixture()
	f.schedule.override = &domain.DateOverride{
		StartTime: "14:00",
		EndTime:   "16:00",
		Capacity:  2,
	}

	// Время из недельного шаблона больше не действует
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, create_booking.ErrSlotNotFound)

	req := validRequest()
	req.StartTime = types.TimeString("14:00")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("16:00"), resp.Booking.EndTime)
}

func TestExecute_TenantNotFound(t *testing.T) {
	f := newFixture()
	f.tenant.err = tenantservice.ErrTenantNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, create_booking.ErrTenantNotFound)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecute_DiscountRedeemedAndSnapshotted(t *testing.T) {
	f := newFixture()
	code := "WELCOME10"
	f.discount.getErr = nil
	f.discount.discount = &domain.DiscountCode{
		ID:     7,
		Code:   "welcome10",
		Type:   domain.DiscountTypePercentage,
		Value:  10,
		Status: domain.DiscountStatusActive,
	}

	req := validRequest()
	req.DiscountCode = &code

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, f.discount.redeemed)
	assert.Equal(t, money.FromUnits(10), resp.Pricing.CodeDiscount)
	assert.Equal(t, money.FromUnits(90), resp.Booking.FinalTotal)
	require.NotNil(t, resp.Booking.DiscountCodeID)
	assert.Equal(t, int64(7), *resp.Booking.DiscountCodeID)
}

func TestExecute_DiscountExhaustedConcurrently(t *testing.T) {
	f := newFixture()
	code := "last-one"
	f.discount.getErr = nil
	f.discount.discount = &domain.DiscountCode{
		ID:     7,
		Code:   "last-one",
		Type:   domain.DiscountTypePercentage,
		Value:  10,
		Status: domain.DiscountStatusActive,
	}
	f.discount.redeemErr = discountRepo.ErrDiscountExhausted

	req := validRequest()
	req.DiscountCode = &code

	_, err := f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, create_booking.ErrDiscountInvalid)
	assert.Nil(t, f.booking.created)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*create_booking.Request)
	}{
		{"date in the past", func(r *create_booking.Request) { r.Date = time.Now().AddDate(0, 0, -1) }},
		{"missing customer name", func(r *create_booking.Request) { r.CustomerName = "" }},
		{"malformed email", func(r *create_booking.Request) { r.CustomerEmail = "not-an-email" }},
		{"unknown frequency", func(r *create_booking.Request) { r.Frequency = "daily" }},
		{"bad start time", func(r *create_booking.Request) { r.StartTime = "25:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, create_booking.ErrInvalidInput)
		})
	}
}
