package get_vehicle

import (
	"context"

	"github.com/m04kA/CRP-FleetService/internal/service/fleet/models"
)

type FleetService interface {
	GetVehicle(ctx context.Context, companyID, vehicleID int64) (*models.VehicleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
