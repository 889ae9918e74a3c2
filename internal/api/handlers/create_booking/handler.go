package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/api/middleware"
	createBooking "github.com/m04kA/barbershop-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Corpo da requisição inválido"
	msgInvalidServiceID   = "ID do serviço inválido"
	msgInvalidDate        = "Data inválida, esperado formato ISO 8601"
	msgInvalidInput       = "Dados do agendamento inválidos"
	msgPastTime           = "Não é possível agendar em um horário que já passou"
	msgInvalidTimeSlot    = "Horário fora da grade de atendimento"
	msgSlotTaken          = "Horário já está ocupado"
	msgServiceNotFound    = "Serviço não encontrado"
	msgForbidden          = "Não é permitido agendar para outro usuário"
	msgUnauthorized       = "Usuário não autenticado"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking - Missing authenticated user")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case
	useCaseReq, err := req.ToUseCaseRequest(callerID)
	if err != nil {
		h.logger.Warn("POST /booking - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidServiceID) {
			handlers.RespondBadRequest(w, msgInvalidServiceID)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /booking - Slot taken: service_id=%s, date=%s", req.BarbershopServiceID, req.Date)
			handlers.RespondBadRequest(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrPastTime):
			h.logger.Warn("POST /booking - Past time: user_id=%s, date=%s", req.UserID, req.Date)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /booking - Invalid time slot: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /booking - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /booking - Forbidden: caller=%s, user_id=%s", callerID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /booking - Service not found: service_id=%s", req.BarbershopServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /booking - Failed to create booking: user_id=%s, service_id=%s, error=%v",
				req.UserID, req.BarbershopServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking - Booking created successfully: booking_id=%s, user_id=%s",
		result.ID, result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
