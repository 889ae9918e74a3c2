package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/service/bookings/models"
	createBooking "github.com/m04kA/barbershop-booking/internal/usecase/create_booking"
)

var (
	errInvalidServiceID = errors.New("invalid barbershopServiceId")
	errInvalidDate      = errors.New("invalid date")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BarbershopServiceID string `json:"barbershopServiceId"`
	UserID              string `json:"userId"`
	Date                string `json:"date"` // RFC 3339, "2024-07-26T13:00:00.000Z"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(callerID string) (*createBooking.Request, error) {
	serviceID, err := uuid.Parse(r.BarbershopServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidServiceID, err)
	}

	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	return &createBooking.Request{
		ServiceID: serviceID,
		UserID:    r.UserID,
		CallerID:  callerID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return &models.BookingResponse{
		ID:                  resp.ID.String(),
		BarbershopServiceID: resp.ServiceID.String(),
		UserID:              resp.UserID,
		Date:                resp.Date.UTC(),
		Status:              string(resp.Status),
		CreatedAt:           resp.CreatedAt.UTC(),
		BarbershopService:   models.FromDomainService(resp.Service),
	}
}
