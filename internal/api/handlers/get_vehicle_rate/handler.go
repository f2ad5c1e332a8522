package get_vehicle_rate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRP-FleetService/internal/api/handlers"
	"github.com/m04kA/CRP-FleetService/internal/service/fleet"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidVehicleID = "некорректный ID юнита"
	msgNotFound         = "юнит не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service FleetService
	logger  Logger
}

func NewHandler(service FleetService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/vehicles/{vehicleId}/rate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем companyId из URL
	companyIDStr := vars["companyId"]
	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/vehicles/{id}/rate - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Извлекаем vehicleId из URL
	vehicleIDStr := vars["vehicleId"]
	vehicleID, err := strconv.ParseInt(vehicleIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/vehicles/{id}/rate - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	rate, err := h.service.GetVehicleRate(r.Context(), companyID, vehicleID)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrVehicleNotFound):
			h.logger.Warn("GET /companies/{id}/vehicles/{id}/rate - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, fleet.ErrCrossTenantAccess):
			h.logger.Warn("GET /companies/{id}/vehicles/{id}/rate - Access denied: vehicle_id=%d, company_id=%d", vehicleID, companyID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /companies/{id}/vehicles/{id}/rate - Failed to resolve rate: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/vehicles/{id}/rate - Rate resolved successfully: vehicle_id=%d, source=%s",
		vehicleID, rate.Source)
	handlers.RespondJSON(w, http.StatusOK, rate)
}
