package bulk_set_rates

import (
	"fmt"

	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Пустой селектор допустим: операция охватит весь каталог.
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.Make != nil && *req.Make == "" {
		return fmt.Errorf("%w: make criterion must not be empty", ErrInvalidInput)
	}
	if req.Model != nil && *req.Model == "" {
		return fmt.Errorf("%w: model criterion must not be empty", ErrInvalidInput)
	}

	if req.NewRate != nil {
		if *req.NewRate < domain.MinDailyRate || *req.NewRate > domain.MaxDailyRate {
			return fmt.Errorf("%w: newRate must be between %.2f and %.2f", ErrInvalidInput, domain.MinDailyRate, domain.MaxDailyRate)
		}
	}

	return nil
}
