package get_day_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
)

const (
	msgMissingParams    = "Os parâmetros date e serviceId são obrigatórios"
	msgInvalidServiceID = "ID do serviço inválido"
	msgInvalidDate      = "Data inválida, esperado YYYY-MM-DD ou ISO 8601"
	msgInvalidTimeZone  = "Fuso horário inválido"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

// NewHandler location - пояс по умолчанию для даты без параметра tz
func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /booking?serviceId=<uuid>&date=<YYYY-MM-DD>[&tz=<IANA>]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" || query.Get("date") == "" {
		h.logger.Warn("GET /booking - Missing params: serviceId=%q, date=%q", serviceIDStr, query.Get("date"))
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		h.logger.Warn("GET /booking - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	day, err := handlers.ParseDay(query.Get("date"), query.Get("tz"), h.location)
	if err != nil {
		h.logger.Warn("GET /booking - Invalid day: %v", err)
		if errors.Is(err, handlers.ErrInvalidTimeZone) {
			handlers.RespondBadRequest(w, msgInvalidTimeZone)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.service.ListForServiceAndDay(r.Context(), serviceID, day)
	if err != nil {
		h.logger.Error("GET /booking - Failed to get bookings: service_id=%s, day=%s, error=%v",
			serviceID, day, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /booking - Bookings retrieved successfully: service_id=%s, day=%s, count=%d",
		serviceID, day, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
