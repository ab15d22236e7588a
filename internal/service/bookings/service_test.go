package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	bookingRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/booking"
	"github.com/nordbooking/NB-BookingCore/internal/service/bookings"
	"github.com/nordbooking/NB-BookingCore/internal/service/bookings/models"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	updated   *domain.BookingStatus
	cancelled *domain.BookingStatus
	reason    string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) GetByTenantWithFilter(_ context.Context, _ domain.TenantBookingsFilter) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updated = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, status domain.BookingStatus, reason string) error {
	f.cancelled = &status
	f.reason = reason
	return nil
}

type fakeCache struct {
	invalidated int
}

func (f *fakeCache) Invalidate(_ context.Context, _ int64, _ time.Time) {
	f.invalidated++
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:              100,
		TenantID:        42,
		ServiceID:       1,
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "12:00",
		DurationMinutes: 120,
		Frequency:       domain.FrequencyOneTime,
		Status:          domain.StatusPending,
		CustomerName:    "Anna Berg",
		CustomerEmail:   "anna@example.com",
		ServiceName:     "Deep cleaning",
		Subtotal:        money.FromUnits(100),
		FinalTotal:      money.FromUnits(100),
	}
}

func TestGetByID_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	svc := bookings.NewService(repo, nil, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 100, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "2025-10-15", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, int64(10000), resp.FinalTotal)
}

func TestGetByID_AccessDeniedForForeignTenant(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	svc := bookings.NewService(repo, nil, nopLogger{})

	_, err := svc.GetByID(context.Background(), 100, 777)

	assert.ErrorIs(t, err, bookings.ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := bookings.NewService(repo, nil, nopLogger{})

	_, err := svc.GetByID(context.Background(), 100, 42)

	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestCancel_ByTenant(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	cache := &fakeCache{}
	svc := bookings.NewService(repo, cache, nopLogger{})

	err := svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{
		TenantID:           42,
		CancellationReason: "customer asked by phone",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.cancelled)
	assert.Equal(t, domain.StatusCancelledByTenant, *repo.cancelled)
	assert.Equal(t, "customer asked by phone", repo.reason)
	// Отмена освобождает место - кэш слотов даты сброшен
	assert.Equal(t, 1, cache.invalidated)
}

func TestCancel_ByCustomer(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	svc := bookings.NewService(repo, nil, nopLogger{})

	err := svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{
		TenantID:   42,
		ByCustomer: true,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.cancelled)
	assert.Equal(t, domain.StatusCancelledByCustomer, *repo.cancelled)
}

func TestCancel_RejectsNonCancellableStatus(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{"completed booking", domain.StatusCompleted},
		{"in progress booking", domain.StatusInProgress},
		{"already cancelled", domain.StatusCancelledByTenant},
		{"no show", domain.StatusNoShow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := pendingBooking()
			booking.Status = tt.status
			repo := &fakeBookingRepo{booking: booking}
			svc := bookings.NewService(repo, nil, nopLogger{})

			err := svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{TenantID: 42})

			assert.ErrorIs(t, err, bookings.ErrCannotCancel)
			assert.Nil(t, repo.cancelled)
		})
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	svc := bookings.NewService(repo, nil, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		TenantID: 42,
		Status:   "confirmed",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, domain.StatusConfirmed, *repo.updated)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	svc := bookings.NewService(repo, nil, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 100, &models.UpdateStatusRequest{
		TenantID: 42,
		Status:   "teleported",
	})

	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
	assert.Nil(t, repo.updated)
}
