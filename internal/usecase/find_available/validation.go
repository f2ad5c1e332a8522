package find_available

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса.
// Некорректное окно отсекается до единого обращения к хранилищу.
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.PickupAt.IsZero() {
		return fmt.Errorf("%w: pickupAt is required", ErrInvalidInput)
	}
	if req.ReturnAt.IsZero() {
		return fmt.Errorf("%w: returnAt is required", ErrInvalidInput)
	}

	// Нулевое окно тоже некорректно: начало должно быть строго раньше конца
	if !req.PickupAt.Before(req.ReturnAt) {
		return ErrInvalidRange
	}

	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationId must be positive", ErrInvalidInput)
	}

	return nil
}
