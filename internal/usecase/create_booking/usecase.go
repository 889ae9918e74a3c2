package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	barbershopRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/barbershop"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

const (
	outcomeCreated   = "created"
	outcomeSlotTaken = "slot_taken"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	location     *time.Location
	candidates   []types.TimeString
	outcomes     OutcomeRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location и candidates задают сетку слотов, в которую должно попадать время бронирования.
// outcomes может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	location *time.Location,
	candidates []types.TimeString,
	outcomes OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		location:     location,
		candidates:   candidates,
		outcomes:     outcomes,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Блокировок нет: двойное бронирование отсекает уникальный индекс (service_id, date)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, service=%s, date=%s",
		req.UserID, req.ServiceID, req.Date.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observe(outcomeRejected)
		return nil, err
	}
	userID := strings.TrimSpace(req.UserID)

	// 2. Бронировать можно только на себя
	if userID != req.CallerID {
		uc.logger.Warn("CreateBooking: caller=%s tried to book for user=%s", req.CallerID, userID)
		uc.observe(outcomeRejected)
		return nil, ErrForbidden
	}

	// 3. Время должно быть в будущем
	date := req.Date.UTC()
	now := uc.timeProvider.Now()
	if !date.After(now) {
		uc.logger.Warn("CreateBooking: date %s is not after now %s",
			date.Format(time.RFC3339), now.UTC().Format(time.RFC3339))
		uc.observe(outcomeRejected)
		return nil, ErrPastTime
	}

	// 4. Время должно совпадать со слотом сетки
	if !domain.IsCandidate(date, uc.location, uc.candidates) {
		uc.logger.Warn("CreateBooking: date %s is not a slot start in %s",
			date.Format(time.RFC3339), uc.location)
		uc.observe(outcomeRejected)
		return nil, ErrInvalidTimeSlot
	}

	// 5. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, barbershopRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			uc.observe(outcomeRejected)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		uc.observe(outcomeFailed)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 6. Сохраняем бронирование
	created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		ServiceID: req.ServiceID,
		UserID:    userID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			uc.logger.Warn("CreateBooking: slot taken: service=%s, date=%s",
				req.ServiceID, date.Format(time.RFC3339))
			uc.observe(outcomeSlotTaken)
			return nil, ErrSlotTaken
		case errors.Is(err, bookingRepo.ErrServiceNotFound):
			// услугу удалили между шагами 5 и 6
			uc.logger.Warn("CreateBooking: service id=%s disappeared: %v", req.ServiceID, err)
			uc.observe(outcomeRejected)
			return nil, ErrServiceNotFound
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			uc.observe(outcomeFailed)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.observe(outcomeCreated)
	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	return &Response{
		ID:        created.ID,
		ServiceID: created.ServiceID,
		UserID:    created.UserID,
		Date:      created.Date.UTC(),
		Status:    created.StatusAt(now),
		CreatedAt: created.CreatedAt,
		Service:   service,
	}, nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.outcomes != nil {
		uc.outcomes.ObserveBookingOutcome(outcome)
	}
}
