package get_day_bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/bookings/models"
)

type BookingService interface {
	ListForServiceAndDay(ctx context.Context, serviceID uuid.UUID, day domain.CalendarDay) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
