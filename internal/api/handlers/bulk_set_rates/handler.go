package bulk_set_rates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRP-FleetService/internal/api/handlers"
	bulkSetRates "github.com/m04kA/CRP-FleetService/internal/usecase/bulk_set_rates"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSelector    = "некорректный селектор или ставка"
)

type Handler struct {
	useCase BulkSetRatesUseCase
	logger  Logger
}

func NewHandler(useCase BulkSetRatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/rates/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /companies/{id}/rates/bulk - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var req BulkSetRatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companies/{id}/rates/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(companyID))
	if err != nil {
		switch {
		case errors.Is(err, bulkSetRates.ErrInvalidInput):
			h.logger.Warn("POST /companies/{id}/rates/bulk - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidSelector)

		default:
			h.logger.Error("POST /companies/{id}/rates/bulk - Failed to set rates: company_id=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /companies/{id}/rates/bulk - Rates updated successfully: company_id=%d, units_updated=%d, entries_created=%d",
		companyID, result.UnitsUpdated, result.CatalogEntriesCreated)
	handlers.RespondJSON(w, http.StatusOK, response)
}
