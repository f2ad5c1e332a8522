package get_display_rate

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
	msgInvalidQuery     = "некорректные параметры запроса"
	msgEmptyGroup       = "в группе нет ни одного юнита"
	msgVehicleNotFound  = "юнит не найден"
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

// Handle GET /api/v1/companies/{companyId}/display-rate
// Query params: vehicleIds (список через запятую) либо селектор
// спецификаций (category, make, model, modelYear)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/display-rate - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	req, err := ToServiceRequest(companyID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /companies/{id}/display-rate - Invalid query params: company_id=%d, error=%v", companyID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetDisplayRate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrEmptyGroup):
			h.logger.Warn("GET /companies/{id}/display-rate - Empty group: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgEmptyGroup)

		case errors.Is(err, fleet.ErrVehicleNotFound):
			h.logger.Warn("GET /companies/{id}/display-rate - Vehicle not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, fleet.ErrCrossTenantAccess):
			h.logger.Warn("GET /companies/{id}/display-rate - Access denied: company_id=%d", companyID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, fleet.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/display-rate - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /companies/{id}/display-rate - Failed to compute display rate: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/display-rate - Display rate computed successfully: company_id=%d, units=%d, varies=%t",
		companyID, result.UnitCount, result.Varies)
	handlers.RespondJSON(w, http.StatusOK, result)
}
