package create_vehicle

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена в реестре
	ErrCompanyNotFound = errors.New("create_vehicle: company not found")

	// ErrLocationNotFound возвращается, когда точка выдачи не найдена в компании
	ErrLocationNotFound = errors.New("create_vehicle: location not found in company")

	// ErrDuplicateVehicle возвращается при дубликате госномера или VIN
	ErrDuplicateVehicle = errors.New("create_vehicle: vehicle with this license plate or VIN already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_vehicle: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_vehicle: internal error")
)
