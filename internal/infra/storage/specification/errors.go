package specification

import "errors"

var (
	// ErrSpecificationNotFound возвращается, когда спецификация не найдена
	ErrSpecificationNotFound = errors.New("specification.repository: specification not found")

	// ErrSpecificationExists возвращается при нарушении уникальности (make, model, year)
	ErrSpecificationExists = errors.New("specification.repository: specification already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("specification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("specification.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("specification.repository: failed to scan row")
)
