package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	barbershopRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/barbershop"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) ListByServiceAndPeriod(ctx context.Context, serviceID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, serviceID, from, to)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

type mockCatalogRepository struct {
	mock.Mock
}

func (m *mockCatalogRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Service)
	return s, args.Error(1)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

func newTestUseCase(t *testing.T, bookings *mockBookingRepository, catalog *mockCatalogRepository, now time.Time) *UseCase {
	uc := NewUseCase(bookings, catalog, brt, defaultCandidates(t), logger.NewNop())
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	bookings := &mockBookingRepository{}
	catalog := &mockCatalogRepository{}
	serviceID := uuid.New()
	day := domain.NewCalendarDay(brt, 2024, time.July, 26)

	catalog.On("GetServiceByID", mock.Anything, serviceID).Return(&domain.Service{ID: serviceID}, nil)
	bookings.On("ListByServiceAndPeriod", mock.Anything, serviceID, day.Start(), day.End()).Return([]*domain.Booking{
		{ServiceID: serviceID, Date: time.Date(2024, 7, 26, 13, 0, 0, 0, time.UTC)}, // 10:00 BRT
		{ServiceID: serviceID, Date: time.Date(2024, 7, 26, 17, 0, 0, 0, time.UTC)}, // 14:00 BRT
	}, nil)

	// 07:00 BRT
	uc := newTestUseCase(t, bookings, catalog, time.Date(2024, 7, 26, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: serviceID, Day: day})

	require.NoError(t, err)
	assert.Equal(t, serviceID, resp.ServiceID)
	assert.True(t, resp.Day.Equal(day))
	assert.Equal(t, []types.TimeString{
		"08:00", "09:00", "11:00", "12:00", "13:00", "15:00", "16:00", "17:00", "18:00",
	}, resp.Slots)
	bookings.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestExecute_RequestZoneSelectsOnlyDate(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	bookings := &mockBookingRepository{}
	catalog := &mockCatalogRepository{}
	serviceID := uuid.New()
	candidates := defaultCandidates(t)

	// Клиент прислал tz=UTC, барбершоп работает по Сан-Паулу
	requested := domain.NewCalendarDay(time.UTC, 2030, time.July, 26)
	shopDay := domain.NewCalendarDay(saoPaulo, 2030, time.July, 26)

	catalog.On("GetServiceByID", mock.Anything, serviceID).Return(&domain.Service{ID: serviceID}, nil)
	bookings.On("ListByServiceAndPeriod", mock.Anything, serviceID, shopDay.Start(), shopDay.End()).Return([]*domain.Booking{
		{ServiceID: serviceID, Date: time.Date(2030, 7, 26, 13, 0, 0, 0, time.UTC)}, // 10:00 в Сан-Паулу
	}, nil)

	uc := NewUseCase(bookings, catalog, saoPaulo, candidates, logger.NewNop())
	uc.timeProvider = fixedTimeProvider{now: time.Date(2030, 7, 1, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: serviceID, Day: requested})

	require.NoError(t, err)
	assert.Equal(t, saoPaulo, resp.Day.Location())
	assert.True(t, resp.Day.Equal(requested))
	assert.Equal(t, []types.TimeString{
		"08:00", "09:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00",
	}, resp.Slots)

	// каждый предложенный слот должен пройти проверку при создании бронирования
	for _, slot := range resp.Slots {
		assert.True(t, domain.IsCandidate(resp.Day.At(slot), saoPaulo, candidates), "slot %s", slot)
	}
	bookings.AssertExpectations(t)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "nil service", req: &Request{Day: domain.NewCalendarDay(time.UTC, 2024, time.July, 26)}},
		{name: "zero day", req: &Request{ServiceID: uuid.New()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingRepository{}
			catalog := &mockCatalogRepository{}
			uc := newTestUseCase(t, bookings, catalog, time.Now())

			resp, err := uc.Execute(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidInput)
			catalog.AssertNotCalled(t, "GetServiceByID", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	bookings := &mockBookingRepository{}
	catalog := &mockCatalogRepository{}
	serviceID := uuid.New()

	catalog.On("GetServiceByID", mock.Anything, serviceID).
		Return(nil, barbershopRepo.ErrServiceNotFound)

	uc := newTestUseCase(t, bookings, catalog, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: serviceID,
		Day:       domain.NewCalendarDay(time.UTC, 2024, time.July, 26),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
	bookings.AssertNotCalled(t, "ListByServiceAndPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_CatalogFailure(t *testing.T) {
	bookings := &mockBookingRepository{}
	catalog := &mockCatalogRepository{}
	serviceID := uuid.New()

	catalog.On("GetServiceByID", mock.Anything, serviceID).Return(nil, errors.New("connection reset"))

	uc := newTestUseCase(t, bookings, catalog, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: serviceID,
		Day:       domain.NewCalendarDay(time.UTC, 2024, time.July, 26),
	})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_BookingsFailure(t *testing.T) {
	bookings := &mockBookingRepository{}
	catalog := &mockCatalogRepository{}
	serviceID := uuid.New()

	catalog.On("GetServiceByID", mock.Anything, serviceID).Return(&domain.Service{ID: serviceID}, nil)
	bookings.On("ListByServiceAndPeriod", mock.Anything, serviceID, mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	uc := newTestUseCase(t, bookings, catalog, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: serviceID,
		Day:       domain.NewCalendarDay(time.UTC, 2024, time.July, 26),
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
}
