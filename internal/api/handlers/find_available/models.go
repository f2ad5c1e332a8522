package find_available

import (
	"time"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	findAvailable "github.com/m04kA/CRP-FleetService/internal/usecase/find_available"
)

// GroupResponse группа доступных юнитов одной спецификации
type GroupResponse struct {
	SpecificationID int64               `json:"specificationId"`
	Make            string              `json:"make"`
	Model           string              `json:"model"`
	ModelYear       int                 `json:"modelYear"`
	Category        *string             `json:"category,omitempty"`
	AvailableCount  int                 `json:"availableCount"`
	PriceRange      *PriceRangeResponse `json:"priceRange,omitempty"`
}

// PriceRangeResponse диапазон суточных ставок группы
type PriceRangeResponse struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// AvailableVehiclesResponse HTTP response model
type AvailableVehiclesResponse struct {
	CompanyID int64           `json:"companyId"`
	PickupAt  string          `json:"pickupAt"`
	ReturnAt  string          `json:"returnAt"`
	Groups    []GroupResponse `json:"groups"`
}

// ToUseCaseRequest собирает запрос use case из параметров запроса.
// Времена ожидаются в формате RFC3339.
func ToUseCaseRequest(companyID int64, pickupStr, returnStr string, locationID *int64) (*findAvailable.Request, error) {
	pickupAt, err := time.Parse(domain.TimestampFormat, pickupStr)
	if err != nil {
		return nil, err
	}

	returnAt, err := time.Parse(domain.TimestampFormat, returnStr)
	if err != nil {
		return nil, err
	}

	return &findAvailable.Request{
		CompanyID:  companyID,
		PickupAt:   pickupAt,
		ReturnAt:   returnAt,
		LocationID: locationID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findAvailable.Response) *AvailableVehiclesResponse {
	groups := make([]GroupResponse, len(resp.Groups))
	for i, group := range resp.Groups {
		groups[i] = GroupResponse{
			SpecificationID: group.SpecificationID,
			Make:            group.Make,
			Model:           group.Model,
			ModelYear:       group.ModelYear,
			Category:        group.Category,
			AvailableCount:  group.AvailableCount,
		}
		if group.PriceRange != nil {
			groups[i].PriceRange = &PriceRangeResponse{
				Min: group.PriceRange.Min,
				Avg: group.PriceRange.Avg,
				Max: group.PriceRange.Max,
			}
		}
	}

	return &AvailableVehiclesResponse{
		CompanyID: resp.CompanyID,
		PickupAt:  resp.PickupAt.Format(domain.TimestampFormat),
		ReturnAt:  resp.ReturnAt.Format(domain.TimestampFormat),
		Groups:    groups,
	}
}
