package get_barbershop

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/barbershops"
)

const (
	msgInvalidID = "ID da barbearia inválido"
	msgNotFound  = "Barbearia não encontrada"
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

// Handle GET /barbershop/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("GET /barbershop/{id} - Invalid barbershop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, barbershops.ErrBarbershopNotFound) {
			h.logger.Warn("GET /barbershop/{id} - Barbershop not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /barbershop/{id} - Failed to get barbershop: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbershop/{id} - Barbershop retrieved successfully: id=%s, services=%d",
		id, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
