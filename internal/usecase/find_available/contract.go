package find_available

import (
	"context"
	"time"

	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// VehicleRepository интерфейс репозитория юнитов автопарка
type VehicleRepository interface {
	ListByCompany(ctx context.Context, filter domain.VehicleFilter) ([]*domain.Vehicle, error)
}

// SpecificationRepository интерфейс репозитория спецификаций
type SpecificationRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Specification, error)
}

// CatalogEntryRepository интерфейс репозитория записей каталога
type CatalogEntryRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.CatalogEntry, error)
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	ListActiveForVehiclesInWindow(ctx context.Context, vehicleIDs []int64, from, to time.Time) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
