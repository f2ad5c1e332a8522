package create_specification

import (
	"errors"
	"net/http"

	"github.com/m04kA/CRP-FleetService/internal/api/handlers"
	"github.com/m04kA/CRP-FleetService/internal/service/catalog"
	"github.com/m04kA/CRP-FleetService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidSpecification = "некорректные данные спецификации"
	msgSpecificationExists  = "спецификация с такими маркой, моделью и годом уже существует"
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

// Handle POST /api/v1/catalog/specifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpecificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /catalog/specifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSpecification(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSpecificationExists):
			h.logger.Warn("POST /catalog/specifications - Specification already exists: make=%s, model=%s, year=%d",
				req.Make, req.Model, req.ModelYear)
			handlers.RespondError(w, http.StatusConflict, msgSpecificationExists)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /catalog/specifications - Invalid input: make=%s, model=%s, year=%d, error=%v",
				req.Make, req.Model, req.ModelYear, err)
			handlers.RespondBadRequest(w, msgInvalidSpecification)

		default:
			h.logger.Error("POST /catalog/specifications - Failed to create specification: make=%s, model=%s, year=%d, error=%v",
				req.Make, req.Model, req.ModelYear, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /catalog/specifications - Specification created successfully: specification_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
