package get_barbershop

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/service/barbershops/models"
)

type BarbershopService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.BarbershopDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
