package catalogentry

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись каталога не найдена
	ErrEntryNotFound = errors.New("catalogentry.repository: catalog entry not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalogentry.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalogentry.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalogentry.repository: failed to scan row")
)
