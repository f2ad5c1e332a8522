package models

import (
	"time"

	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// Request модели

// DisplayRateRequest запрос витринной ставки для группы юнитов.
// Группа задается либо явным списком VehicleIDs, либо селектором
// спецификаций (category/make/model/modelYear) по юнитам компании.
type DisplayRateRequest struct {
	CompanyID  int64   `json:"companyId"`
	VehicleIDs []int64 `json:"vehicleIds,omitempty"`
	Category   *string `json:"category,omitempty"`
	Make       *string `json:"make,omitempty"`
	Model      *string `json:"model,omitempty"`
	ModelYear  *int    `json:"modelYear,omitempty"`
}

// HasExplicitUnits возвращает true, если группа задана явным списком юнитов
func (r *DisplayRateRequest) HasExplicitUnits() bool {
	return len(r.VehicleIDs) > 0
}

// ToDomainSelector конвертирует request в domain селектор спецификаций
func (r *DisplayRateRequest) ToDomainSelector() (domain.SpecSelector, error) {
	selector := domain.SpecSelector{
		Make:      r.Make,
		Model:     r.Model,
		ModelYear: r.ModelYear,
	}

	if r.Category != nil {
		category, err := domain.ParseVehicleCategory(*r.Category)
		if err != nil {
			return selector, err
		}
		selector.Category = &category
	}

	return selector, nil
}

// Response модели

// SpecificationResponse данные спецификации юнита
type SpecificationResponse struct {
	ID        int64   `json:"id"`
	Make      string  `json:"make"`
	Model     string  `json:"model"`
	ModelYear int     `json:"modelYear"`
	Category  *string `json:"category,omitempty"`
}

// RateResponse эффективная суточная ставка юнита.
// Amount = null означает "ставка не настроена" (не ноль).
type RateResponse struct {
	Amount *float64 `json:"amount"`
	Source string   `json:"source"` // override | catalog | unset
}

// VehicleResponse ответ с данными юнита автопарка
type VehicleResponse struct {
	ID            int64                  `json:"id"`
	CompanyID     int64                  `json:"companyId"`
	LicensePlate  string                 `json:"licensePlate"`
	VIN           *string                `json:"vin,omitempty"`
	LocationID    *int64                 `json:"locationId,omitempty"`
	Status        string                 `json:"status"`
	Specification *SpecificationResponse `json:"specification,omitempty"`
	Rate          RateResponse           `json:"rate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayRateResponse витринная ставка группы юнитов.
// Возможные состояния:
// - varies=true: ставки в группе различаются, amount = null
// - varies=false, amount != null: единая настроенная ставка
// - varies=false, amount = null: ставка равномерно не настроена
type DisplayRateResponse struct {
	Varies    bool     `json:"varies"`
	Amount    *float64 `json:"amount"`
	UnitCount int      `json:"unitCount"`
}

// Методы конвертации

// FromDomainSpecification конвертирует domain модель спецификации в DTO
func FromDomainSpecification(spec *domain.Specification) *SpecificationResponse {
	if spec == nil {
		return nil
	}

	resp := &SpecificationResponse{
		ID:        spec.ID,
		Make:      spec.Make,
		Model:     spec.Model,
		ModelYear: spec.ModelYear,
	}

	if spec.Category != nil {
		category := string(*spec.Category)
		resp.Category = &category
	}

	return resp
}

// FromDomainRate конвертирует domain модель ставки в DTO
func FromDomainRate(rate domain.ResolvedRate) RateResponse {
	return RateResponse{
		Amount: rate.Amount,
		Source: string(rate.Source),
	}
}

// FromDomainVehicle конвертирует domain модель юнита в DTO
func FromDomainVehicle(unit *domain.Vehicle, spec *domain.Specification, rate domain.ResolvedRate) *VehicleResponse {
	if unit == nil {
		return nil
	}

	return &VehicleResponse{
		ID:            unit.ID,
		CompanyID:     unit.CompanyID,
		LicensePlate:  unit.LicensePlate,
		VIN:           unit.VIN,
		LocationID:    unit.LocationID,
		Status:        string(unit.Status),
		Specification: FromDomainSpecification(spec),
		Rate:          FromDomainRate(rate),
		CreatedAt:     unit.CreatedAt,
		UpdatedAt:     unit.UpdatedAt,
	}
}

// FromDomainDisplayRate конвертирует domain модель витринной ставки в DTO
func FromDomainDisplayRate(displayRate domain.DisplayRate, unitCount int) *DisplayRateResponse {
	return &DisplayRateResponse{
		Varies:    displayRate.Varies,
		Amount:    displayRate.Amount,
		UnitCount: unitCount,
	}
}
