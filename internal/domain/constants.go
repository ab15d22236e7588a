package domain

// Business validation constants
const (
	MinSlotCapacity = 1
	MaxSlotCapacity = 100

	MinDayOfWeek = 0 // Sunday
	MaxDayOfWeek = 6 // Saturday

	MaxOptionNameLength         = 255
	MaxTextOptionLength         = 1000
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxDiscountCodeLength       = 50
	MaxQuantityValue            = 1000
	MaxSqmValue                 = 100000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при подсчёте занятых мест в слотах
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCustomer,
	StatusCancelledByTenant,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// ValidBookingStatuses все допустимые статусы бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelledByCustomer,
	StatusCancelledByTenant,
	StatusNoShow,
}
