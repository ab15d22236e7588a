package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("create_booking: tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotNotFound возвращается, когда в расписании дня нет слота
	// с запрошенным временем начала
	ErrSlotNotFound = errors.New("create_booking: time slot not found in schedule")

	// ErrSlotUnavailable возвращается, когда вместимость слота исчерпана
	ErrSlotUnavailable = errors.New("create_booking: time slot has no remaining capacity")

	// ErrValidation возвращается при некорректном выборе опций.
	// Всегда обёрнута в OptionValidationError с ID опции.
	ErrValidation = errors.New("create_booking: invalid option selection")

	// ErrDiscountInvalid возвращается, когда промокод не может быть применён
	ErrDiscountInvalid = errors.New("create_booking: discount code is not applicable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// OptionValidationError ошибка валидации конкретной опции
type OptionValidationError struct {
	OptionID int64
	Reason   string
}

func (e *OptionValidationError) Error() string {
	return fmt.Sprintf("%v: option %d: %s", ErrValidation, e.OptionID, e.Reason)
}

// Unwrap позволяет errors.Is(err, ErrValidation)
func (e *OptionValidationError) Unwrap() error {
	return ErrValidation
}

// DiscountInvalidError ошибка применения промокода с причиной
type DiscountInvalidError struct {
	Code   string
	Reason string
}

func (e *DiscountInvalidError) Error() string {
	return fmt.Sprintf("%v: code %q: %s", ErrDiscountInvalid, e.Code, e.Reason)
}

// Unwrap позволяет errors.Is(err, ErrDiscountInvalid)
func (e *DiscountInvalidError) Unwrap() error {
	return ErrDiscountInvalid
}
