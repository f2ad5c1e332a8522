package create_vehicle

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	"github.com/m04kA/CRP-FleetService/internal/integrations/companyservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.LicensePlate) == "" {
		return fmt.Errorf("%w: licensePlate is required", ErrInvalidInput)
	}
	if len(req.LicensePlate) > domain.MaxLicensePlateLength {
		return fmt.Errorf("%w: licensePlate is too long", ErrInvalidInput)
	}

	if req.VIN != nil && len(*req.VIN) != domain.MaxVINLength {
		return fmt.Errorf("%w: vin must be %d characters", ErrInvalidInput, domain.MaxVINLength)
	}

	if req.RateOverride != nil {
		if *req.RateOverride < domain.MinDailyRate || *req.RateOverride > domain.MaxDailyRate {
			return fmt.Errorf("%w: rateOverride must be between %.2f and %.2f", ErrInvalidInput, domain.MinDailyRate, domain.MaxDailyRate)
		}
	}

	if req.HasSpecification() {
		return validateSpecificationBlock(req, now)
	}

	// Без спецификации категория не имеет смысла
	if req.Category != nil {
		return fmt.Errorf("%w: category requires make, model and modelYear", ErrInvalidInput)
	}

	return nil
}

// validateSpecificationBlock проверяет блок спецификации целиком:
// частично заданная спецификация - ошибка, а не непривязанный юнит
func validateSpecificationBlock(req *Request, now time.Time) error {
	if strings.TrimSpace(req.Make) == "" {
		return fmt.Errorf("%w: make is required when specification is provided", ErrInvalidInput)
	}
	if len(req.Make) > domain.MaxMakeLength {
		return fmt.Errorf("%w: make is too long", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Model) == "" {
		return fmt.Errorf("%w: model is required when specification is provided", ErrInvalidInput)
	}
	if len(req.Model) > domain.MaxModelLength {
		return fmt.Errorf("%w: model is too long", ErrInvalidInput)
	}

	maxYear := now.Year() + domain.MaxModelYearsAhead
	if req.ModelYear < domain.MinModelYear || req.ModelYear > maxYear {
		return fmt.Errorf("%w: modelYear must be between %d and %d", ErrInvalidInput, domain.MinModelYear, maxYear)
	}

	if req.Category != nil {
		if _, err := domain.ParseVehicleCategory(*req.Category); err != nil {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
	}

	return nil
}

// validateLocationExists проверяет, что точка выдачи существует в компании
func validateLocationExists(company *companyservice.Company, locationID int64) error {
	for _, id := range company.LocationIDs {
		if id == locationID {
			return nil
		}
	}
	return ErrLocationNotFound
}
