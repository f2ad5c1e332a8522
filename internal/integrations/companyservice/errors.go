package companyservice

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена в реестре
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("companyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("companyservice client: invalid response")
)
