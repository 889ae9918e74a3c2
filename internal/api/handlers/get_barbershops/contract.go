package get_barbershops

import (
	"context"

	"github.com/m04kA/barbershop-booking/internal/service/barbershops/models"
)

type BarbershopService interface {
	List(ctx context.Context, req *models.ListRequest) ([]models.BarbershopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
