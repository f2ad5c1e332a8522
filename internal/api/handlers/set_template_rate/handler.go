package set_template_rate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRP-FleetService/internal/api/handlers"
	"github.com/m04kA/CRP-FleetService/internal/service/catalog"
	"github.com/m04kA/CRP-FleetService/internal/service/catalog/models"
)

const (
	msgInvalidSpecificationID = "некорректный ID спецификации"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidRate            = "некорректная ставка"
	msgNotFound               = "спецификация не найдена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/catalog/specifications/{specId}/template-rate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем specId из URL
	vars := mux.Vars(r)
	specIDStr := vars["specId"]

	specID, err := strconv.ParseInt(specIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /catalog/specifications/{id}/template-rate - Invalid specification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecificationID)
		return
	}

	var req models.SetTemplateRateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /catalog/specifications/{id}/template-rate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetTemplateRate(r.Context(), specID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSpecificationNotFound):
			h.logger.Warn("PUT /catalog/specifications/{id}/template-rate - Specification not found: specification_id=%d", specID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /catalog/specifications/{id}/template-rate - Invalid rate: specification_id=%d, error=%v", specID, err)
			handlers.RespondBadRequest(w, msgInvalidRate)

		default:
			h.logger.Error("PUT /catalog/specifications/{id}/template-rate - Failed to set template rate: specification_id=%d, error=%v", specID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /catalog/specifications/{id}/template-rate - Template rate set successfully: specification_id=%d", specID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
