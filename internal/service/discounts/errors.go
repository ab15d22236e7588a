package discounts

import "errors"

var (
	// ErrDiscountNotFound возвращается, когда промокод не найден
	ErrDiscountNotFound = errors.New("discount code not found")

	// ErrCodeTaken возвращается при создании промокода с кодом,
	// который уже существует у этого тенанта
	ErrCodeTaken = errors.New("discount code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
