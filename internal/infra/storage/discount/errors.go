package discount

import "errors"

var (
	// ErrDiscountNotFound возвращается, когда промокод не найден
	ErrDiscountNotFound = errors.New("discount.repository: discount code not found")

	// ErrDiscountExhausted возвращается, когда лимит использований
	// промокода уже исчерпан на момент списания
	ErrDiscountExhausted = errors.New("discount.repository: discount code usage limit reached")

	// ErrCodeTaken возвращается при создании промокода с кодом,
	// который уже существует у этого тенанта
	ErrCodeTaken = errors.New("discount.repository: code already exists for tenant")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("discount.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("discount.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("discount.repository: failed to scan row")
)
