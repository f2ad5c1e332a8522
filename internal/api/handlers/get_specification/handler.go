package get_specification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRP-FleetService/internal/api/handlers"
	"github.com/m04kA/CRP-FleetService/internal/service/catalog"
)

const (
	msgInvalidSpecificationID = "некорректный ID спецификации"
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

// Handle GET /api/v1/catalog/specifications/{specId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем specId из URL
	vars := mux.Vars(r)
	specIDStr := vars["specId"]

	specID, err := strconv.ParseInt(specIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /catalog/specifications/{id} - Invalid specification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecificationID)
		return
	}

	spec, err := h.service.GetSpecification(r.Context(), specID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSpecificationNotFound):
			h.logger.Warn("GET /catalog/specifications/{id} - Specification not found: specification_id=%d", specID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /catalog/specifications/{id} - Failed to get specification: specification_id=%d, error=%v", specID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /catalog/specifications/{id} - Specification retrieved successfully: specification_id=%d", specID)
	handlers.RespondJSON(w, http.StatusOK, spec)
}
