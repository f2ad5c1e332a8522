package vehicle

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда юнит не найден
	ErrVehicleNotFound = errors.New("vehicle.repository: vehicle not found")

	// ErrDuplicateVehicle возвращается при нарушении уникальности
	// (госномер в рамках компании или VIN глобально)
	ErrDuplicateVehicle = errors.New("vehicle.repository: vehicle already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vehicle.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vehicle.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vehicle.repository: failed to scan row")
)
