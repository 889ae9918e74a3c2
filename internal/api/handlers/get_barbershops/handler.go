package get_barbershops

import (
	"errors"
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/barbershops"
	"github.com/m04kA/barbershop-booking/internal/service/barbershops/models"
)

const (
	msgInvalidSearch = "Parâmetros de busca inválidos"
)

type Handler struct {
	service BarbershopService
	logger  Logger
}

func NewHandler(service BarbershopService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /barbershop
// Query params: search (по названию), service (по названию услуги)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListRequest{
		Search:      query.Get("search"),
		ServiceName: query.Get("service"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, barbershops.ErrInvalidInput) {
			h.logger.Warn("GET /barbershop - Invalid search: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSearch)
			return
		}
		h.logger.Error("GET /barbershop - Failed to list barbershops: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbershop - Barbershops retrieved successfully: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
