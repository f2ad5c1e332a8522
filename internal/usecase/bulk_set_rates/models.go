package bulk_set_rates

import (
	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// Request модель запроса на массовую установку ставок.
// Селектор - конъюнкция заданных критериев; пустой селектор охватывает
// все спецификации каталога.
type Request struct {
	CompanyID int64   // ID компании
	Category  *string // Критерий по категории (опционально)
	Make      *string // Критерий по марке (опционально)
	Model     *string // Критерий по модели (опционально)
	ModelYear *int    // Критерий по модельному году (опционально)

	NewRate *float64 // Новая суточная ставка юнитов; nil сбрасывает персональные ставки
}

// ToDomainSelector конвертирует request в domain селектор спецификаций
func (r *Request) ToDomainSelector() (domain.SpecSelector, error) {
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

// Response модель ответа массовой установки ставок
type Response struct {
	UnitsUpdated          int64 // Количество юнитов, получивших новую ставку
	CatalogEntriesCreated int64 // Количество материализованных записей каталога
}
