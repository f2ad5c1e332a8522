package create_vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRP-FleetService/internal/api/handlers"
	createVehicle "github.com/m04kA/CRP-FleetService/internal/usecase/create_vehicle"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVehicle     = "некорректные данные юнита"
	msgCompanyNotFound    = "компания не найдена"
	msgLocationNotFound   = "точка выдачи не найдена"
	msgDuplicateVehicle   = "юнит с таким госномером или VIN уже существует"
)

type Handler struct {
	useCase CreateVehicleUseCase
	logger  Logger
}

func NewHandler(useCase CreateVehicleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/vehicles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /companies/{id}/vehicles - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var req CreateVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companies/{id}/vehicles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(companyID))
	if err != nil {
		switch {
		case errors.Is(err, createVehicle.ErrCompanyNotFound):
			h.logger.Warn("POST /companies/{id}/vehicles - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createVehicle.ErrLocationNotFound):
			h.logger.Warn("POST /companies/{id}/vehicles - Location not found: company_id=%d, location_id=%v", companyID, req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, createVehicle.ErrDuplicateVehicle):
			h.logger.Warn("POST /companies/{id}/vehicles - Duplicate vehicle: company_id=%d, plate=%s", companyID, req.LicensePlate)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateVehicle)

		case errors.Is(err, createVehicle.ErrInvalidInput):
			h.logger.Warn("POST /companies/{id}/vehicles - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidVehicle)

		default:
			h.logger.Error("POST /companies/{id}/vehicles - Failed to create vehicle: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /companies/{id}/vehicles - Vehicle created successfully: vehicle_id=%d, company_id=%d",
		result.ID, companyID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
