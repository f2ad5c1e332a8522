package models

import (
	"time"

	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// Request модели

// CreateSpecificationRequest запрос на создание спецификации каталога
type CreateSpecificationRequest struct {
	Make      string  `json:"make"`
	Model     string  `json:"model"`
	ModelYear int     `json:"modelYear"`
	Category  *string `json:"category,omitempty"`
}

// ToDomain конвертирует request в domain модель с нормализацией ключа
func (r *CreateSpecificationRequest) ToDomain() (*domain.Specification, error) {
	spec := &domain.Specification{
		Make:      r.Make,
		Model:     r.Model,
		ModelYear: r.ModelYear,
	}

	if r.Category != nil {
		category, err := domain.ParseVehicleCategory(*r.Category)
		if err != nil {
			return nil, err
		}
		spec.Category = &category
	}

	spec.Normalize()
	return spec, nil
}

// SetTemplateRateRequest запрос на установку шаблонной ставки.
// TemplateRate = null сбрасывает ставку в состояние "не настроена".
type SetTemplateRateRequest struct {
	TemplateRate *float64 `json:"templateRate"`
}

// Response модели

// SpecificationResponse ответ с данными спецификации и её записи каталога
type SpecificationResponse struct {
	ID           int64    `json:"id"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	ModelYear    int      `json:"modelYear"`
	Category     *string  `json:"category,omitempty"`
	TemplateRate *float64 `json:"templateRate"` // null = ставка не настроена

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TemplateRateResponse ответ на установку шаблонной ставки
type TemplateRateResponse struct {
	SpecificationID int64    `json:"specificationId"`
	TemplateRate    *float64 `json:"templateRate"`
}

// Методы конвертации

// FromDomainSpecification конвертирует domain модели в DTO.
// entry может быть nil, если запись каталога еще не материализована:
// шаблонная ставка в этом случае не настроена.
func FromDomainSpecification(spec *domain.Specification, entry *domain.CatalogEntry) *SpecificationResponse {
	if spec == nil {
		return nil
	}

	resp := &SpecificationResponse{
		ID:        spec.ID,
		Make:      spec.Make,
		Model:     spec.Model,
		ModelYear: spec.ModelYear,
		CreatedAt: spec.CreatedAt,
		UpdatedAt: spec.UpdatedAt,
	}

	if spec.Category != nil {
		category := string(*spec.Category)
		resp.Category = &category
	}

	if entry != nil {
		resp.TemplateRate = entry.TemplateRate
	}

	return resp
}
