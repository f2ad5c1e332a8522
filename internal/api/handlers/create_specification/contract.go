package create_specification

import (
	"context"

	"github.com/m04kA/CRP-FleetService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateSpecification(ctx context.Context, req *models.CreateSpecificationRequest) (*models.SpecificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
