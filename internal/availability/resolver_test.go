package availability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/availability"
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

func recurringSlot(start, end string, capacity int, active bool) *domain.RecurringSlot {
	return &domain.RecurringSlot{
		TenantID:  42,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Capacity:  capacity,
		IsActive:  active,
	}
}

func activeBooking(start, end string) *domain.Booking {
	return &domain.Booking{
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusConfirmed,
	}
}

func TestResolveDayTemplate_RecurringOnly(t *testing.T) {
	recurring := []*domain.RecurringSlot{
		recurringSlot("09:00", "11:00", 2, true),
		recurringSlot("11:00", "13:00", 1, true),
		recurringSlot("13:00", "15:00", 3, false),
	}

	slots := availability.ResolveDayTemplate(nil, recurring)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, 2, slots[0].Capacity)
	assert.Equal(t, 2, slots[0].Remaining)
	assert.Equal(t, types.TimeString("11:00"), slots[1].StartTime)
}

func TestResolveDayTemplate_UnavailableOverrideClosesDay(t *testing.T) {
	override := &domain.DateOverride{IsUnavailable: true}
	recurring := []*domain.RecurringSlot{
		recurringSlot("09:00", "11:00", 2, true),
	}

	slots := availability.ResolveDayTemplate(override, recurring)

	assert.Empty(t, slots)
}

func TestResolveDayTemplate_CustomOverrideReplacesRecurring(t *testing.T) {
	override := &domain.DateOverride{
		StartTime: types.TimeString("14:00"),
		EndTime:   types.TimeString("18:00"),
		Capacity:  5,
	}
	recurring := []*domain.RecurringSlot{
		recurringSlot("09:00", "11:00", 2, true),
		recurringSlot("11:00", "13:00", 1, true),
	}

	slots := availability.ResolveDayTemplate(override, recurring)

	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("14:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("18:00"), slots[0].EndTime)
	assert.Equal(t, 5, slots[0].Capacity)
}

func TestApplyLoad_FullSlotsKeptWithZeroRemaining(t *testing.T) {
	slots := []domain.TimeSlot{
		{StartTime: "09:00", EndTime: "11:00", Capacity: 1, Remaining: 1},
		{StartTime: "11:00", EndTime: "13:00", Capacity: 2, Remaining: 2},
	}
	bookings := []*domain.Booking{
		activeBooking("09:00", "11:00"),
		activeBooking("11:00", "13:00"),
	}

	loaded := availability.ApplyLoad(slots, bookings)

	require.Len(t, loaded, 2)
	assert.Equal(t, 0, loaded[0].Remaining)
	assert.False(t, loaded[0].Available())
	assert.Equal(t, 1, loaded[1].Remaining)
	assert.True(t, loaded[1].Available())
}

func TestCountOverlapping_StrictInequality(t *testing.T) {
	tests := []struct {
		name     string
		booking  *domain.Booking
		expected int
	}{
		{"booking ends exactly at slot start", activeBooking("08:00", "10:00"), 0},
		{"booking starts exactly at slot end", activeBooking("12:00", "14:00"), 0},
		{"booking overlaps slot start", activeBooking("09:00", "11:00"), 1},
		{"booking inside slot", activeBooking("10:30", "11:30"), 1},
		{"booking covers whole slot", activeBooking("09:00", "13:00"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := availability.CountOverlapping("10:00", "12:00", []*domain.Booking{tt.booking})
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestCountOverlapping_IgnoresInactiveBookings(t *testing.T) {
	cancelled := activeBooking("10:00", "12:00")
	cancelled.Status = domain.StatusCancelledByCustomer
	noShow := activeBooking("10:00", "12:00")
	noShow.Status = domain.StatusNoShow

	count := availability.CountOverlapping("10:00", "12:00", []*domain.Booking{
		cancelled,
		noShow,
		activeBooking("10:00", "12:00"),
	})

	assert.Equal(t, 1, count)
}

func TestCountOverlapping_DerivesEndFromDuration(t *testing.T) {
	booking := &domain.Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 90,
		Status:          domain.StatusPending,
	}

	// 10:00 + 90 минут = 11:30, пересекается с [11:00, 13:00)
	count := availability.CountOverlapping("11:00", "13:00", []*domain.Booking{booking})

	assert.Equal(t, 1, count)
}

func TestFindSlot(t *testing.T) {
	slots := []domain.TimeSlot{
		{StartTime: "09:00", EndTime: "11:00"},
		{StartTime: "11:00", EndTime: "13:00"},
	}

	found := availability.FindSlot(slots, "11:00")
	require.NotNil(t, found)
	assert.Equal(t, types.TimeString("13:00"), found.EndTime)

	assert.Nil(t, availability.FindSlot(slots, "10:00"))
}
