package get_available_slots

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID int64     // ID тенанта
	Date     time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов дня
type Response struct {
	TenantID int64     // ID тенанта
	Date     time.Time // Дата, на которую запрашивались слоты
	Slots    []Slot    // Все слоты дня, включая полностью занятые
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "09:00")
	EndTime   types.TimeString // Время конца слота
	Capacity  int              // Общая вместимость слота
	Remaining int              // Свободных мест
	Available bool             // remaining > 0; занятые слоты не скрываются
}

// fromDomainSlots конвертирует разрешённые слоты в модели ответа
func fromDomainSlots(slots []domain.TimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Capacity:  s.Capacity,
			Remaining: s.Remaining,
			Available: s.Available(),
		}
	}
	return result
}
