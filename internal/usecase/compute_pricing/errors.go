package compute_pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("compute_pricing: service not found")

	// ErrValidation возвращается при некорректном выборе опций.
	// Всегда обёрнута в OptionValidationError с ID опции.
	ErrValidation = errors.New("compute_pricing: invalid option selection")

	// ErrDiscountInvalid возвращается, когда промокод не может быть применён
	// (не найден / неактивен / истёк / исчерпан лимит использований)
	ErrDiscountInvalid = errors.New("compute_pricing: discount code is not applicable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_pricing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("compute_pricing: internal error")
)

// OptionValidationError ошибка валидации конкретной опции.
// Несёт ID опции, чтобы форма могла подсветить проблемное поле.
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

// DiscountRejectReason причина отклонения промокода
type DiscountRejectReason string

const (
	DiscountReasonNotFound  DiscountRejectReason = "not_found"
	DiscountReasonInactive  DiscountRejectReason = "inactive"
	DiscountReasonExpired   DiscountRejectReason = "expired"
	DiscountReasonExhausted DiscountRejectReason = "usage_limit_reached"
)

// DiscountInvalidError ошибка применения промокода с причиной
type DiscountInvalidError struct {
	Code   string
	Reason DiscountRejectReason
}

func (e *DiscountInvalidError) Error() string {
	return fmt.Sprintf("%v: code %q: %s", ErrDiscountInvalid, e.Code, e.Reason)
}

// Unwrap позволяет errors.Is(err, ErrDiscountInvalid)
func (e *DiscountInvalidError) Unwrap() error {
	return ErrDiscountInvalid
}
