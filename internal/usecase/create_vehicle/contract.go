package create_vehicle

import (
	"context"
	"time"

	"github.com/m04kA/CRP-FleetService/internal/domain"
	"github.com/m04kA/CRP-FleetService/internal/integrations/companyservice"
)

// SpecificationRepository интерфейс репозитория спецификаций
type SpecificationRepository interface {
	GetOrCreate(ctx context.Context, spec *domain.Specification) (*domain.Specification, bool, error)
}

// CatalogEntryRepository интерфейс репозитория записей каталога
type CatalogEntryRepository interface {
	EnsureForSpecifications(ctx context.Context, specificationIDs []int64) (int64, error)
	GetBySpecificationID(ctx context.Context, specificationID int64) (*domain.CatalogEntry, error)
}

// VehicleRepository интерфейс репозитория юнитов автопарка
type VehicleRepository interface {
	Create(ctx context.Context, unit *domain.Vehicle) (*domain.Vehicle, error)
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
