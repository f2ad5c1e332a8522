package bulk_set_rates

import (
	bulkSetRates "github.com/m04kA/CRP-FleetService/internal/usecase/bulk_set_rates"
)

// BulkSetRatesRequest HTTP request model.
// Селектор спецификаций - конъюнкция заданных критериев; без единого
// критерия операция охватывает весь каталог.
type BulkSetRatesRequest struct {
	Category  *string `json:"category,omitempty"`
	Make      *string `json:"make,omitempty"`
	Model     *string `json:"model,omitempty"`
	ModelYear *int    `json:"modelYear,omitempty"`

	NewRate *float64 `json:"newRate"` // null сбрасывает персональные ставки
}

// BulkSetRatesResponse HTTP response model
type BulkSetRatesResponse struct {
	UnitsUpdated          int64 `json:"unitsUpdated"`
	CatalogEntriesCreated int64 `json:"catalogEntriesCreated"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BulkSetRatesRequest) ToUseCaseRequest(companyID int64) *bulkSetRates.Request {
	return &bulkSetRates.Request{
		CompanyID: companyID,
		Category:  r.Category,
		Make:      r.Make,
		Model:     r.Model,
		ModelYear: r.ModelYear,
		NewRate:   r.NewRate,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bulkSetRates.Response) *BulkSetRatesResponse {
	return &BulkSetRatesResponse{
		UnitsUpdated:          resp.UnitsUpdated,
		CatalogEntriesCreated: resp.CatalogEntriesCreated,
	}
}
