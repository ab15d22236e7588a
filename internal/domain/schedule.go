package domain

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// RecurringSlot represents a weekly-repeating bookable time window of a tenant.
// Multiple slots per weekday are permitted; non-overlapping is a recommendation,
// not enforced.
type RecurringSlot struct {
	ID        int64
	TenantID  int64
	DayOfWeek int // 0=Sunday .. 6=Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOverride represents a per-date exception to the recurring template.
// At most one override per tenant+date. If IsUnavailable is false, the
// override's single start/end/capacity fully replaces the recurring slots
// for that date; it never merges with them.
type DateOverride struct {
	ID            int64
	TenantID      int64
	Date          time.Time // date only, midnight UTC
	IsUnavailable bool
	StartTime     types.TimeString // empty when IsUnavailable
	EndTime       types.TimeString // empty when IsUnavailable
	Capacity      int              // 0 when IsUnavailable

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeSlot represents one resolved slot of a concrete date
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
	Remaining int
}

// Available returns true if the slot still has free capacity.
// Fully booked slots are kept in resolver results so callers can
// render them as "fully booked" rather than hiding them.
func (s *TimeSlot) Available() bool {
	return s.Remaining > 0
}

// DayOfWeek returns the 0=Sunday..6=Saturday index for a date
func DayOfWeek(date time.Time) int {
	return int(date.Weekday())
}

// DateOnly truncates a timestamp to midnight UTC, the canonical
// representation for booking dates and override dates
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
