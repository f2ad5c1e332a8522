package create_vehicle

import (
	"context"

	createVehicle "github.com/m04kA/CRP-FleetService/internal/usecase/create_vehicle"
)

type CreateVehicleUseCase interface {
	Execute(ctx context.Context, req *createVehicle.Request) (*createVehicle.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
