package fleet

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда юнит не найден
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrCrossTenantAccess возвращается при обращении к юниту чужой компании.
	// Чужие юниты не фильтруются молча: запрос отклоняется целиком.
	ErrCrossTenantAccess = errors.New("vehicle belongs to another company")

	// ErrDanglingCatalogRef возвращается, когда юнит ссылается на
	// несуществующую запись каталога. Битая ссылка - это повреждение данных,
	// она никогда не трактуется как "ставка не настроена".
	ErrDanglingCatalogRef = errors.New("vehicle references a missing catalog entry")

	// ErrEmptyGroup возвращается, когда под запрос витринной ставки не попал
	// ни один юнит
	ErrEmptyGroup = errors.New("no vehicles match the requested group")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
