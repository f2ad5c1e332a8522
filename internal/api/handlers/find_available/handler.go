package find_available

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRP-FleetService/internal/api/handlers"
	findAvailable "github.com/m04kA/CRP-FleetService/internal/usecase/find_available"
)

const (
	msgInvalidCompanyID  = "некорректный ID компании"
	msgInvalidLocationID = "некорректный ID точки выдачи"
	msgMissingPickupAt   = "время начала аренды обязательно"
	msgMissingReturnAt   = "время окончания аренды обязательно"
	msgInvalidTimestamp  = "некорректный формат времени, ожидается RFC3339"
	msgInvalidRange      = "начало аренды должно быть раньше окончания"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase FindAvailableUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/available-vehicles
// Query params: pickupAt (required, RFC3339), returnAt (required, RFC3339),
// locationId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/available-vehicles - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Извлекаем окно аренды из query параметров
	pickupStr := r.URL.Query().Get("pickupAt")
	if pickupStr == "" {
		h.logger.Warn("GET /companies/{id}/available-vehicles - Missing pickupAt: company_id=%d", companyID)
		handlers.RespondBadRequest(w, msgMissingPickupAt)
		return
	}

	returnStr := r.URL.Query().Get("returnAt")
	if returnStr == "" {
		h.logger.Warn("GET /companies/{id}/available-vehicles - Missing returnAt: company_id=%d", companyID)
		handlers.RespondBadRequest(w, msgMissingReturnAt)
		return
	}

	// Извлекаем locationId из query параметров (опционально)
	var locationID *int64
	if locationStr := r.URL.Query().Get("locationId"); locationStr != "" {
		id, err := strconv.ParseInt(locationStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /companies/{id}/available-vehicles - Invalid location ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLocationID)
			return
		}
		locationID = &id
	}

	useCaseReq, err := ToUseCaseRequest(companyID, pickupStr, returnStr, locationID)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/available-vehicles - Invalid timestamp format: company_id=%d, error=%v", companyID, err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findAvailable.ErrInvalidRange):
			h.logger.Warn("GET /companies/{id}/available-vehicles - Invalid window: company_id=%d, pickup=%s, return=%s",
				companyID, pickupStr, returnStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, findAvailable.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/available-vehicles - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /companies/{id}/available-vehicles - Failed to find available vehicles: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /companies/{id}/available-vehicles - Availability computed successfully: company_id=%d, groups=%d",
		companyID, len(result.Groups))
	handlers.RespondJSON(w, http.StatusOK, response)
}
