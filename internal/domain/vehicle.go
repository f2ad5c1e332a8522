package domain

import (
	"errors"
	"strings"
	"time"
)

// VehicleStatus represents the operational status of an inventory unit
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

// ErrUnknownVehicleStatus возвращается при неизвестном статусе автомобиля
var ErrUnknownVehicleStatus = errors.New("unknown vehicle status")

// VehicleStatuses список всех допустимых статусов
var VehicleStatuses = []VehicleStatus{
	VehicleAvailable,
	VehicleRented,
	VehicleMaintenance,
	VehicleRetired,
}

// ParseVehicleStatus конвертирует строку в VehicleStatus с валидацией
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	st := VehicleStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range VehicleStatuses {
		if st == valid {
			return st, nil
		}
	}
	return "", ErrUnknownVehicleStatus
}

// Vehicle is a rentable inventory unit owned by exactly one company.
// CompanyID is immutable after creation. CatalogEntryID optionally links the
// unit to the shared catalog; RateOverride, when set, takes precedence over
// the linked entry's template rate.
type Vehicle struct {
	ID             int64
	CompanyID      int64
	CatalogEntryID *int64 // NULL = юнит не привязан к каталогу
	LicensePlate   string
	VIN            *string
	LocationID     *int64
	Status         VehicleStatus
	RateOverride   *float64 // NULL = переопределение ставки не задано

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOverride returns true if the unit carries a per-unit rate override
func (v *Vehicle) HasOverride() bool {
	return v.RateOverride != nil
}

// IsInCatalog returns true if the unit is linked to a catalog entry
func (v *Vehicle) IsInCatalog() bool {
	return v.CatalogEntryID != nil
}

// IsBookable returns true if the unit can take new rentals
func (v *Vehicle) IsBookable() bool {
	return v.Status == VehicleAvailable
}

// VehicleFilter фильтр для выборки автопарка компании
type VehicleFilter struct {
	CompanyID         int64          // Обязательный параметр
	Status            *VehicleStatus // Фильтр по статусу (опционально)
	LocationID        *int64         // Фильтр по локации (опционально)
	CatalogLinkedOnly bool           // Только юниты, привязанные к каталогу
}
