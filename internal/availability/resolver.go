// Package availability реализует чистое разрешение доступности дня:
// недельный шаблон слотов + переопределения дат + занятость существующими
// бронированиями. Никакого I/O - все данные передаются аргументами.
package availability

import (
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// ResolveDayTemplate возвращает шаблонные слоты на день.
//
// Приоритет источников:
//  1. override с is_unavailable - день закрыт, пустой список,
//     абсолютный приоритет над недельным шаблоном
//  2. override с собственным временем - единственный слот дня,
//     полностью заменяет (не дополняет) недельный шаблон
//  3. активные recurring-слоты соответствующего дня недели
func ResolveDayTemplate(override *domain.DateOverride, recurring []*domain.RecurringSlot) []domain.TimeSlot {
	if override != nil {
		if override.IsUnavailable {
			return []domain.TimeSlot{}
		}
		return []domain.TimeSlot{{
			StartTime: override.StartTime,
			EndTime:   override.EndTime,
			Capacity:  override.Capacity,
			Remaining: override.Capacity,
		}}
	}

	slots := make([]domain.TimeSlot, 0, len(recurring))
	for _, rs := range recurring {
		if !rs.IsActive {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			StartTime: rs.StartTime,
			EndTime:   rs.EndTime,
			Capacity:  rs.Capacity,
			Remaining: rs.Capacity,
		})
	}
	return slots
}

// ApplyLoad уменьшает remaining каждого слота на число пересекающихся
// активных бронирований. Слоты с remaining <= 0 остаются в списке -
// вызывающая сторона показывает их как "fully booked", а не скрывает.
func ApplyLoad(slots []domain.TimeSlot, bookings []*domain.Booking) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(slots))
	for i, slot := range slots {
		occupied := CountOverlapping(slot.StartTime, slot.EndTime, bookings)
		remaining := slot.Capacity - occupied
		if remaining < 0 {
			remaining = 0
		}
		result[i] = domain.TimeSlot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Capacity:  slot.Capacity,
			Remaining: remaining,
		}
	}
	return result
}

// CountOverlapping подсчитывает активные бронирования, пересекающиеся
// с интервалом [start, end). Интервалы пересекаются только при реальном
// наложении: бронирование, заканчивающееся ровно в start слота (или
// начинающееся ровно в end), пересечением не считается.
func CountOverlapping(start, end types.TimeString, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd := booking.EndTime
		if bookingEnd.IsZero() {
			var err error
			bookingEnd, err = bookingStart.AddMinutes(booking.DurationMinutes)
			if err != nil {
				continue
			}
		}

		// Строгие неравенства: граничащие интервалы не пересекаются
		if bookingStart.IsBefore(end) && bookingEnd.IsAfter(start) {
			count++
		}
	}
	return count
}

// FindSlot возвращает слот дня, начинающийся в start, или nil
func FindSlot(slots []domain.TimeSlot, start types.TimeString) *domain.TimeSlot {
	for i := range slots {
		if slots[i].StartTime == start {
			return &slots[i]
		}
	}
	return nil
}
