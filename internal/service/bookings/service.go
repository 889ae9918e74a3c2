package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/domain"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	"github.com/m04kA/barbershop-booking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: отмена и выборки
// Создание бронирования вынесено в usecase create_booking
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Cancel отменяет (удаляет) бронирование
// Отменить можно только своё бронирование; чтение с блокировкой строки и удаление
// выполняются в одной транзакции, при отказе ничего не удаляется
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, userID string) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, userID)

	if bookingID == uuid.Nil || strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: bookingID and userID are required", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование (FOR UPDATE внутри транзакции)
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%s not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем владельца
		if !booking.IsOwnedBy(userID) {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", userID, bookingID)
			return ErrAccessDenied
		}

		// 3. Удаляем
		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%s not found during delete", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrInternal) {
			return err
		}
		// ошибки начала или фиксации транзакции
		s.logger.Error("Cancel: transaction error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// ListForServiceAndDay получает бронирования услуги за календарный день
// Границы дня считаются в часовом поясе day
func (s *Service) ListForServiceAndDay(ctx context.Context, serviceID uuid.UUID, day domain.CalendarDay) (*models.BookingListResponse, error) {
	s.logger.Info("ListForServiceAndDay: fetching bookings for service=%s, day=%s (%s)",
		serviceID, day, day.Location())

	if serviceID == uuid.Nil || day.IsZero() {
		return nil, fmt.Errorf("%w: serviceID and day are required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByServiceAndPeriod(ctx, serviceID, day.Start(), day.End())
	if err != nil {
		s.logger.Error("ListForServiceAndDay: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListForServiceAndDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForServiceAndDay: fetched %d bookings for service=%s, day=%s", len(bookings), serviceID, day)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// ListForCustomer получает все бронирования пользователя (прошедшие и будущие), сначала новые
// Статус confirmed/finished пересчитывается при каждом чтении
func (s *Service) ListForCustomer(ctx context.Context, userID string) (*models.BookingListResponse, error) {
	s.logger.Info("ListForCustomer: fetching bookings for user=%s", userID)

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ListForCustomer: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForCustomer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForCustomer: fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}
