package create_vehicle

import (
	"time"

	createVehicle "github.com/m04kA/CRP-FleetService/internal/usecase/create_vehicle"
)

// CreateVehicleRequest HTTP request model
type CreateVehicleRequest struct {
	LicensePlate string  `json:"licensePlate"`
	Make         string  `json:"make,omitempty"`
	Model        string  `json:"model,omitempty"`
	ModelYear    int     `json:"modelYear,omitempty"`
	Category     *string `json:"category,omitempty"`

	VIN          *string  `json:"vin,omitempty"`
	LocationID   *int64   `json:"locationId,omitempty"`
	RateOverride *float64 `json:"rateOverride,omitempty"`
}

// VehicleResponse HTTP response model
type VehicleResponse struct {
	ID                   int64    `json:"id"`
	CompanyID            int64    `json:"companyId"`
	SpecificationID      *int64   `json:"specificationId,omitempty"`
	CatalogEntryID       *int64   `json:"catalogEntryId,omitempty"`
	LicensePlate         string   `json:"licensePlate"`
	VIN                  *string  `json:"vin,omitempty"`
	LocationID           *int64   `json:"locationId,omitempty"`
	Status               string   `json:"status"`
	RateOverride         *float64 `json:"rateOverride,omitempty"`
	SpecificationCreated bool     `json:"specificationCreated"`
	CreatedAt            string   `json:"createdAt"`
	UpdatedAt            string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateVehicleRequest) ToUseCaseRequest(companyID int64) *createVehicle.Request {
	return &createVehicle.Request{
		CompanyID:    companyID,
		LicensePlate: r.LicensePlate,
		Make:         r.Make,
		Model:        r.Model,
		ModelYear:    r.ModelYear,
		Category:     r.Category,
		VIN:          r.VIN,
		LocationID:   r.LocationID,
		RateOverride: r.RateOverride,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createVehicle.Response) *VehicleResponse {
	return &VehicleResponse{
		ID:                   resp.ID,
		CompanyID:            resp.CompanyID,
		SpecificationID:      resp.SpecificationID,
		CatalogEntryID:       resp.CatalogEntryID,
		LicensePlate:         resp.LicensePlate,
		VIN:                  resp.VIN,
		LocationID:           resp.LocationID,
		Status:               resp.Status,
		RateOverride:         resp.RateOverride,
		SpecificationCreated: resp.SpecificationCreated,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
