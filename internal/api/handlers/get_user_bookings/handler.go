package get_user_bookings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/api/middleware"
)

const (
	msgForbidden    = "Você só pode ver os seus agendamentos"
	msgUnauthorized = "Usuário não autenticado"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /booking/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /booking/{userId} - Missing authenticated user")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем userId из URL
	userID := mux.Vars(r)["userId"]
	if userID != callerID {
		h.logger.Warn("GET /booking/{userId} - Access denied: caller=%s, user_id=%s", callerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Получаем бронирования пользователя
	result, err := h.service.ListForCustomer(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /booking/{userId} - Failed to get bookings: user_id=%s, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /booking/{userId} - Bookings retrieved successfully: user_id=%s, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
