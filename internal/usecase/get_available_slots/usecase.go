package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	barbershopRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/barbershop"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	location     *time.Location
	candidates   []types.TimeString
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location - пояс барбершопа, в котором заданы времена сетки
// candidates - сетка времен начала слотов (из конфигурации)
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	location *time.Location,
	candidates []types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		location:     location,
		candidates:   candidates,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, day=%s (%s)", req.ServiceID, req.Day, req.Day.Location())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Переносим дату в пояс барбершопа: пояс запроса выбирает только дату,
	// а сетка слотов всегда читается в поясе барбершопа
	day := req.Day.In(uc.location)
	if day.Location() != req.Day.Location() {
		uc.logger.Info("GetAvailableSlots: day %s moved from %s to %s", day, req.Day.Location(), day.Location())
	}

	// 3. Проверяем, что услуга существует
	if _, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, barbershopRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем бронирования услуги за день
	bookings, err := uc.bookingRepo.ListByServiceAndPeriod(ctx, req.ServiceID, day.Start(), day.End())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Вычисляем свободные слоты
	slots := AvailableSlots(day, uc.candidates, bookings, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for service=%s, day=%s (%d bookings)",
		len(slots), len(uc.candidates), req.ServiceID, day, len(bookings))

	return &Response{
		Day:       day,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
