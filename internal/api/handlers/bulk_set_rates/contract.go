package bulk_set_rates

import (
	"context"

	bulkSetRates "github.com/m04kA/CRP-FleetService/internal/usecase/bulk_set_rates"
)

type BulkSetRatesUseCase interface {
	Execute(ctx context.Context, req *bulkSetRates.Request) (*bulkSetRates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
