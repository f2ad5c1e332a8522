package get_vehicle_rate

import (
	"context"

	"github.com/m04kA/CRP-FleetService/internal/service/fleet/models"
)

type FleetService interface {
	GetVehicleRate(ctx context.Context, companyID, vehicleID int64) (*models.RateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
