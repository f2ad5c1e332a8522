package set_template_rate

import (
	"context"

	"github.com/m04kA/CRP-FleetService/internal/service/catalog/models"
)

type CatalogService interface {
	SetTemplateRate(ctx context.Context, specificationID int64, req *models.SetTemplateRateRequest) (*models.TemplateRateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
