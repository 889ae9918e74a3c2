package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID uuid.UUID          // ID услуги
	Day       domain.CalendarDay // День в часовом поясе клиента
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Day       domain.CalendarDay // День, на который запрашивались слоты
	ServiceID uuid.UUID          // ID услуги
	Slots     []types.TimeString // Свободные времена начала в порядке сетки
}
