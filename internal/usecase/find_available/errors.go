package find_available

import "errors"

var (
	// ErrInvalidRange возвращается, когда окно аренды некорректно
	// (начало не раньше конца)
	ErrInvalidRange = errors.New("find_available: pickup time must be before return time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_available: invalid input data")

	// ErrDanglingCatalogRef возвращается, когда юнит ссылается на
	// несуществующую запись каталога. Битая ссылка не маскируется
	// ни пропуском юнита, ни ставкой "не настроена".
	ErrDanglingCatalogRef = errors.New("find_available: vehicle references a missing catalog entry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_available: internal error")
)
