package schedule

import "errors"

var (
	// ErrSlotNotFound возвращается, когда недельный слот не найден
	ErrSlotNotFound = errors.New("recurring slot not found")

	// ErrOverrideNotFound возвращается, когда переопределение даты не найдено
	ErrOverrideNotFound = errors.New("date override not found")

	// ErrInvalidTimeRange возвращается, когда start_time не раньше end_time
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidCapacity возвращается при вместимости вне допустимых границ
	ErrInvalidCapacity = errors.New("invalid slot capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
