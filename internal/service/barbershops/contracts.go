package barbershops

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// BarbershopRepository интерфейс репозитория каталога
type BarbershopRepository interface {
	List(ctx context.Context, filter domain.BarbershopFilter) ([]*domain.Barbershop, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Barbershop, error)
	ListServices(ctx context.Context, barbershopID uuid.UUID) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
