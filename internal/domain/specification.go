package domain

import (
	"errors"
	"strings"
	"time"
)

// VehicleCategory is an enumerated vehicle class tag
type VehicleCategory string

const (
	CategoryEconomy  VehicleCategory = "economy"
	CategoryCompact  VehicleCategory = "compact"
	CategoryStandard VehicleCategory = "standard"
	CategorySUV      VehicleCategory = "suv"
	CategoryVan      VehicleCategory = "van"
	CategoryPremium  VehicleCategory = "premium"
)

// ErrUnknownCategory возвращается при неизвестной категории автомобиля
var ErrUnknownCategory = errors.New("unknown vehicle category")

// Categories список всех допустимых категорий
var Categories = []VehicleCategory{
	CategoryEconomy,
	CategoryCompact,
	CategoryStandard,
	CategorySUV,
	CategoryVan,
	CategoryPremium,
}

// ParseVehicleCategory конвертирует строку в VehicleCategory с валидацией
func ParseVehicleCategory(s string) (VehicleCategory, error) {
	c := VehicleCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Categories {
		if c == valid {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Specification identifies a distinct vehicle configuration (make, model, year).
// Make and Model keep the display form supplied at creation; MakeNorm and
// ModelNorm hold the canonical form used for uniqueness and matching.
type Specification struct {
	ID        int64
	Make      string
	Model     string
	MakeNorm  string
	ModelNorm string
	ModelYear int
	Category  *VehicleCategory // NULL = категория не задана

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize fills the canonical make/model forms from the display forms
func (s *Specification) Normalize() {
	s.MakeNorm = NormalizeSpecTerm(s.Make)
	s.ModelNorm = NormalizeSpecTerm(s.Model)
}

// HasCategory returns true if the specification carries a category tag
func (s *Specification) HasCategory() bool {
	return s.Category != nil
}

// NormalizeSpecTerm приводит make/model к каноническому виду:
// обрезает края, схлопывает внутренние пробелы, переводит в нижний регистр
func NormalizeSpecTerm(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
