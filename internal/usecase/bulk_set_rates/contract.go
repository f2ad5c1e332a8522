package bulk_set_rates

import (
	"context"

	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// SpecificationRepository интерфейс репозитория спецификаций
type SpecificationRepository interface {
	FindBySelector(ctx context.Context, selector domain.SpecSelector) ([]*domain.Specification, error)
}

// CatalogEntryRepository интерфейс репозитория записей каталога
type CatalogEntryRepository interface {
	EnsureForSpecifications(ctx context.Context, specificationIDs []int64) (int64, error)
	ListBySpecificationIDs(ctx context.Context, specificationIDs []int64) ([]*domain.CatalogEntry, error)
}

// VehicleRepository интерфейс репозитория юнитов автопарка
type VehicleRepository interface {
	SetOverrideByCatalogEntries(ctx context.Context, companyID int64, catalogEntryIDs []int64, rate *float64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
