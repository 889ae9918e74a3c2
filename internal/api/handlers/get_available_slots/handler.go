package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/barbershop-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID = "ID do serviço inválido"
	msgMissingDate      = "O parâmetro date é obrigatório"
	msgInvalidDate      = "Data inválida, esperado YYYY-MM-DD ou ISO 8601"
	msgInvalidTimeZone  = "Fuso horário inválido"
	msgServiceNotFound  = "Serviço não encontrado"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

// NewHandler location - пояс по умолчанию для даты без параметра tz
func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /services/{serviceId}/available-slots
// Query params: date (required, YYYY-MM-DD или RFC3339), tz (optional, IANA)
// tz влияет только на выбор даты, слоты всегда в поясе барбершопа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	serviceID, err := uuid.Parse(mux.Vars(r)["serviceId"])
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	query := r.URL.Query()
	day, err := handlers.ParseDay(query.Get("date"), query.Get("tz"), h.location)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid day: %v", err)
		switch {
		case errors.Is(err, handlers.ErrMissingDate):
			handlers.RespondBadRequest(w, msgMissingDate)
		case errors.Is(err, handlers.ErrInvalidTimeZone):
			handlers.RespondBadRequest(w, msgInvalidTimeZone)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ServiceID: serviceID,
		Day:       day,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /services/{id}/available-slots - Failed to get slots: service_id=%s, day=%s, error=%v",
				serviceID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/available-slots - Slots retrieved successfully: service_id=%s, day=%s, slots_count=%d",
		serviceID, day, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
