package catalog

import "errors"

var (
	// ErrSpecificationNotFound возвращается, когда спецификация не найдена
	ErrSpecificationNotFound = errors.New("specification not found")

	// ErrSpecificationExists возвращается при создании дубликата спецификации
	ErrSpecificationExists = errors.New("specification already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
