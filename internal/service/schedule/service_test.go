package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	scheduleRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/schedule"
	"github.com/nordbooking/NB-BookingCore/internal/service/schedule"
	"github.com/nordbooking/NB-BookingCore/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	createdSlot    *domain.RecurringSlot
	savedOverride  *domain.DateOverride
	deleteOverride error
	dayStatusCalls int
	affected       int64
}

func (f *fakeScheduleRepo) CreateRecurring(_ context.Context, slot *domain.RecurringSlot) (*domain.RecurringSlot, error) {
	f.createdSlot = slot
	out := *slot
	out.ID = 11
	return &out, nil
}

func (f *fakeScheduleRepo) UpdateRecurring(_ context.Context, _ *domain.RecurringSlot) error {
	return nil
}

func (f *fakeScheduleRepo) DeleteRecurring(_ context.Context, _, _ int64) error {
	return scheduleRepo.ErrSlotNotFound
}

func (f *fakeScheduleRepo) GetRecurringByTenant(_ context.Context, _ int64) ([]*domain.RecurringSlot, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) SetRecurringDayStatus(_ context.Context, _ int64, _ int, _ bool) (int64, error) {
	f.dayStatusCalls++
	return f.affected, nil
}

func (f *fakeScheduleRepo) UpsertOverride(_ context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	f.savedOverride = override
	out := *override
	out.ID = 21
	return &out, nil
}

func (f *fakeScheduleRepo) DeleteOverride(_ context.Context, _ int64, _ time.Time) error {
	return f.deleteOverride
}

func (f *fakeScheduleRepo) GetOverridesInRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.DateOverride, error) {
	return nil, nil
}

type fakeCache struct {
	dates   []time.Time
	tenants []int64
}

func (f *fakeCache) Invalidate(_ context.Context, _ int64, date time.Time) {
	f.dates = append(f.dates, date)
}

func (f *fakeCache) InvalidateTenant(_ context.Context, tenantID int64) {
	f.tenants = append(f.tenants, tenantID)
}

func slotRequest() *models.SaveRecurringSlotRequest {
	return &models.SaveRecurringSlotRequest{
		TenantID:  42,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "11:00",
		Capacity:  2,
		IsActive:  true,
	}
}

func TestCreateRecurringSlot_InvalidatesWholeTenant(t *testing.T) {
	repo := &fakeScheduleRepo{}
	cache := &fakeCache{}
	svc := schedule.NewService(repo, cache, nopLogger{})

	resp, err := svc.CreateRecurringSlot(context.Background(), slotRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	// Недельный шаблон затрагивает все даты - сбрасывается весь тенант
	assert.Equal(t, []int64{42}, cache.tenants)
}

func TestCreateRecurringSlot_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(req *models.SaveRecurringSlotRequest)
		wantErr error
	}{
		{"day out of range", func(r *models.SaveRecurringSlotRequest) { r.DayOfWeek = 7 }, schedule.ErrInvalidInput},
		{"negative day", func(r *models.SaveRecurringSlotRequest) { r.DayOfWeek = -1 }, schedule.ErrInvalidInput},
		{"malformed start time", func(r *models.SaveRecurringSlotRequest) { r.StartTime = "9am" }, schedule.ErrInvalidInput},
		{"start equals end", func(r *models.SaveRecurringSlotRequest) { r.EndTime = "09:00" }, schedule.ErrInvalidTimeRange},
		{"start after end", func(r *models.SaveRecurringSlotRequest) { r.StartTime = "12:00" }, schedule.ErrInvalidTimeRange},
		{"zero capacity", func(r *models.SaveRecurringSlotRequest) { r.Capacity = 0 }, schedule.ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeScheduleRepo{}
			svc := schedule.NewService(repo, nil, nopLogger{})
			req := slotRequest()
			tt.modify(req)

			_, err := svc.CreateRecurringSlot(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.createdSlot)
		})
	}
}

func TestSetDayStatus_SkipsInvalidationWhenNothingChanged(t *testing.T) {
	repo := &fakeScheduleRepo{affected: 0}
	cache := &fakeCache{}
	svc := schedule.NewService(repo, cache, nopLogger{})

	err := svc.SetDayStatus(context.Background(), &models.SetDayStatusRequest{
		TenantID:  42,
		DayOfWeek: 3,
		IsActive:  false,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.dayStatusCalls)
	assert.Empty(t, cache.tenants)
}

func TestSaveDateOverride_UnavailableSkipsTimeValidation(t *testing.T) {
	repo := &fakeScheduleRepo{}
	cache := &fakeCache{}
	svc := schedule.NewService(repo, cache, nopLogger{})

	resp, err := svc.SaveDateOverride(context.Background(), &models.SaveDateOverrideRequest{
		TenantID:      42,
		Date:          "2025-10-15",
		IsUnavailable: true,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsUnavailable)
	// Закрытая дата хранится без времени и вместимости
	assert.Empty(t, string(repo.savedOverride.StartTime))
	assert.Zero(t, repo.savedOverride.Capacity)
	// Сбрасывается только кэш конкретной даты
	require.Len(t, cache.dates, 1)
	assert.Empty(t, cache.tenants)
}

func TestSaveDateOverride_CustomHoursValidated(t *testing.T) {
	svc := schedule.NewService(&fakeScheduleRepo{}, nil, nopLogger{})

	_, err := svc.SaveDateOverride(context.Background(), &models.SaveDateOverrideRequest{
		TenantID:  42,
		Date:      "2025-10-15",
		StartTime: "14:00",
		EndTime:   "10:00",
		Capacity:  1,
	})

	assert.ErrorIs(t, err, schedule.ErrInvalidTimeRange)
}

func TestSaveDateOverride_InvalidDate(t *testing.T) {
	svc := schedule.NewService(&fakeScheduleRepo{}, nil, nopLogger{})

	_, err := svc.SaveDateOverride(context.Background(), &models.SaveDateOverrideRequest{
		TenantID: 42,
		Date:     "15.10.2025",
	})

	assert.ErrorIs(t, err, schedule.ErrInvalidInput)
}

func TestDeleteDateOverride_NotFound(t *testing.T) {
	repo := &fakeScheduleRepo{deleteOverride: scheduleRepo.ErrOverrideNotFound}
	svc := schedule.NewService(repo, nil, nopLogger{})

	err := svc.DeleteDateOverride(context.Background(), 42, "2025-10-15")

	assert.ErrorIs(t, err, schedule.ErrOverrideNotFound)
}
