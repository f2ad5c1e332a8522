package catalog

import (
	"context"
	"time"

	"github.com/m04kA/CRP-FleetService/internal/domain"
)

// SpecificationRepository интерфейс репозитория спецификаций
type SpecificationRepository interface {
	Create(ctx context.Context, spec *domain.Specification) (*domain.Specification, error)
	GetByID(ctx context.Context, id int64) (*domain.Specification, error)
}

// CatalogEntryRepository интерфейс репозитория записей каталога
type CatalogEntryRepository interface {
	EnsureForSpecifications(ctx context.Context, specificationIDs []int64) (int64, error)
	GetBySpecificationID(ctx context.Context, specificationID int64) (*domain.CatalogEntry, error)
	SetTemplateRate(ctx context.Context, specificationID int64, rate *float64) error
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
