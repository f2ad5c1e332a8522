package fleet

import (
	"context"

	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// VehicleRepository интерфейс репозитория юнитов автопарка
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListByCompany(ctx context.Context, filter domain.VehicleFilter) ([]*domain.Vehicle, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Vehicle, error)
}

// SpecificationRepository интерфейс репозитория спецификаций
type SpecificationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specification, error)
	FindBySelector(ctx context.Context, selector domain.SpecSelector) ([]*domain.Specification, error)
}

// CatalogEntryRepository интерфейс репозитория записей каталога
type CatalogEntryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CatalogEntry, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.CatalogEntry, error)
	ListBySpecificationIDs(ctx context.Context, specificationIDs []int64) ([]*domain.CatalogEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
