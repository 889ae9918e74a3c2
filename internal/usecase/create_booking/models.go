package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID uuid.UUID // ID услуги
	UserID    string    // Клиент, на которого оформляется бронирование
	CallerID  string    // Аутентифицированный пользователь
	Date      time.Time // Время начала слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        uuid.UUID
	ServiceID uuid.UUID
	UserID    string
	Date      time.Time // UTC
	Status    domain.BookingStatus
	CreatedAt time.Time
	Service   *domain.Service
}
