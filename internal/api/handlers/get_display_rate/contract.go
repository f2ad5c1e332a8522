package get_display_rate

import (
	"context"

	"github.com/m04kA/CRP-FleetService/internal/service/fleet/models"
)

type FleetService interface {
	GetDisplayRate(ctx context.Context, req *models.DisplayRateRequest) (*models.DisplayRateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
