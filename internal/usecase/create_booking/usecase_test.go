package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	barbershopRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/barbershop"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

var brt = time.FixedZone("BRT", -3*60*60)

// 2024-07-26 07:00 BRT
var now = time.Date(2024, 7, 26, 10, 0, 0, 0, time.UTC)

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	b, _ := args.Get(0).(*domain.Booking)
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

type outcomeCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *outcomeCounter) ObserveBookingOutcome(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[outcome]++
}

func (c *outcomeCounter) get(outcome string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[outcome]
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

// memoryLedger хранит бронирования в памяти с уникальностью (service_id, date)
type memoryLedger struct {
	mu    sync.Mutex
	slots map[string]*domain.Booking
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{slots: make(map[string]*domain.Booking)}
}

func (l *memoryLedger) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := booking.ServiceID.String() + "|" + booking.Date.UTC().Format(time.RFC3339)
	if _, taken := l.slots[key]; taken {
		return nil, fmt.Errorf("%w: Create - service %s", bookingRepo.ErrSlotTaken, booking.ServiceID)
	}

	stored := *booking
	stored.ID = uuid.New()
	stored.CreatedAt = now
	l.slots[key] = &stored

	return &stored, nil
}

func (l *memoryLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

func testCandidates(t *testing.T) []types.TimeString {
	t.Helper()
	candidates, err := domain.SlotSchedule{
		Location:    brt,
		OpeningTime: domain.DefaultOpeningTime,
		ClosingTime: domain.DefaultClosingTime,
		StepMinutes: domain.DefaultSlotStepMinutes,
	}.CandidateTimes()
	require.NoError(t, err)
	return candidates
}

func newTestUseCase(t *testing.T, bookings BookingRepository, catalog CatalogRepository, outcomes OutcomeRecorder) *UseCase {
	uc := NewUseCase(bookings, catalog, brt, testCandidates(t), outcomes, logger.NewNop())
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func validRequest(serviceID uuid.UUID) *Request {
	return &Request{
		ServiceID: serviceID,
		UserID:    "user-a",
		CallerID:  "user-a",
		Date:      time.Date(2024, 7, 26, 10, 0, 0, 0, brt),
	}
}

func TestExecute_Success(t *testing.T) {
	bookings := &mockBookingRepository{}
	catalog := &mockCatalogRepository{}
	outcomes := &outcomeCounter{}
	serviceID := uuid.New()
	bookingID := uuid.New()
	service := &domain.Service{ID: serviceID, Name: "Corte de cabelo", Price: 35}
	wantDate := time.Date(2024, 7, 26, 13, 0, 0, 0, time.UTC)

	catalog.On("GetServiceByID", mock.Anything, serviceID).Return(service, nil)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ServiceID == serviceID && b.UserID == "user-a" &&
			b.Date.Equal(wantDate) && b.Date.Location() == time.UTC
	})).Return(&domain.Booking{
		ID:        bookingID,
		ServiceID: serviceID,
		UserID:    "user-a",
		Date:      wantDate,
		CreatedAt: now,
	}, nil)

	uc := newTestUseCase(t, bookings, catalog, outcomes)

	resp, err := uc.Execute(context.Background(), validRequest(serviceID))

	require.NoError(t, err)
	assert.Equal(t, bookingID, resp.ID)
	assert.Equal(t, wantDate, resp.Date)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Same(t, service, resp.Service)
	assert.Equal(t, 1, outcomes.get(outcomeCreated))
	bookings.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestExecute_Rejections(t *testing.T) {
	serviceID := uuid.New()

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "missing service",
			mutate:  func(r *Request) { r.ServiceID = uuid.Nil },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing user",
			mutate:  func(r *Request) { r.UserID = "  " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			mutate:  func(r *Request) { r.Date = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "booking for another user",
			mutate:  func(r *Request) { r.UserID = "user-b" },
			wantErr: ErrForbidden,
		},
		{
			name:    "date equal to now",
			mutate:  func(r *Request) { r.Date = now },
			wantErr: ErrPastTime,
		},
		{
			name:    "date in the past",
			mutate:  func(r *Request) { r.Date = time.Date(2024, 7, 25, 10, 0, 0, 0, brt) },
			wantErr: ErrPastTime,
		},
		{
			name:    "seconds are not allowed",
			mutate:  func(r *Request) { r.Date = r.Date.Add(time.Second) },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "off the grid",
			mutate:  func(r *Request) { r.Date = time.Date(2024, 7, 26, 10, 30, 0, 0, brt) },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "after closing",
			mutate:  func(r *Request) { r.Date = time.Date(2024, 7, 26, 19, 0, 0, 0, brt) },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "grid time in another zone",
			mutate: func(r *Request) {
				r.Date = time.Date(2024, 7, 26, 10, 0, 0, 0, time.FixedZone("NST", -(2*60+30)*60))
			},
			wantErr: ErrInvalidTimeSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingRepository{}
			catalog := &mockCatalogRepository{}
			outcomes := &outcomeCounter{}
			uc := newTestUseCase(t, bookings, catalog, outcomes)

			req := validRequest(serviceID)
			tt.mutate(req)

			resp, err := uc.Execute(context.Background(), req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, outcomes.get(outcomeRejected))
			bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	bookings := &mockBookingRepository{}
	catalog := &mockCatalogRepository{}
	serviceID := uuid.New()

	catalog.On("GetServiceByID", mock.Anything, serviceID).
		Return(nil, fmt.Errorf("%w: GetServiceByID", barbershopRepo.ErrServiceNotFound))

	uc := newTestUseCase(t, bookings, catalog, nil)

	_, err := uc.Execute(context.Background(), validRequest(serviceID))

	assert.ErrorIs(t, err, ErrServiceNotFound)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	tests := []struct {
		name        string
		repoErr     error
		wantErr     error
		wantOutcome string
	}{
		{
			name:        "slot taken",
			repoErr:     fmt.Errorf("%w: Create", bookingRepo.ErrSlotTaken),
			wantErr:     ErrSlotTaken,
			wantOutcome: outcomeSlotTaken,
		},
		{
			name:        "service deleted concurrently",
			repoErr:     fmt.Errorf("%w: Create", bookingRepo.ErrServiceNotFound),
			wantErr:     ErrServiceNotFound,
			wantOutcome: outcomeRejected,
		},
		{
			name:        "storage failure",
			repoErr:     fmt.Errorf("%w: Create - execute insert: connection reset", bookingRepo.ErrExecQuery),
			wantErr:     ErrInternal,
			wantOutcome: outcomeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingRepository{}
			catalog := &mockCatalogRepository{}
			outcomes := &outcomeCounter{}
			serviceID := uuid.New()

			catalog.On("GetServiceByID", mock.Anything, serviceID).Return(&domain.Service{ID: serviceID}, nil)
			bookings.On("Create", mock.Anything, mock.Anything).Return(nil, tt.repoErr)

			uc := newTestUseCase(t, bookings, catalog, outcomes)

			resp, err := uc.Execute(context.Background(), validRequest(serviceID))

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, outcomes.get(tt.wantOutcome))
		})
	}
}

func TestExecute_CatalogFailure(t *testing.T) {
	bookings := &mockBookingRepository{}
	catalog := &mockCatalogRepository{}
	serviceID := uuid.New()

	catalog.On("GetServiceByID", mock.Anything, serviceID).Return(nil, errors.New("connection reset"))

	uc := newTestUseCase(t, bookings, catalog, nil)

	_, err := uc.Execute(context.Background(), validRequest(serviceID))

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ConcurrentCreatesAllowOneWinner(t *testing.T) {
	const customers = 32

	catalog := &mockCatalogRepository{}
	ledger := newMemoryLedger()
	outcomes := &outcomeCounter{}
	serviceID := uuid.New()

	catalog.On("GetServiceByID", mock.Anything, serviceID).Return(&domain.Service{ID: serviceID}, nil)

	uc := newTestUseCase(t, ledger, catalog, outcomes)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		taken     int
	)
	for i := 0; i < customers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			userID := fmt.Sprintf("user-%d", i)
			req := validRequest(serviceID)
			req.UserID = userID
			req.CallerID = userID

			_, err := uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotTaken):
				taken++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, customers-1, taken)
	assert.Equal(t, 1, ledger.count())
	assert.Equal(t, 1, outcomes.get(outcomeCreated))
	assert.Equal(t, customers-1, outcomes.get(outcomeSlotTaken))
}

func TestExecute_DifferentSlotsDoNotConflict(t *testing.T) {
	catalog := &mockCatalogRepository{}
	ledger := newMemoryLedger()
	serviceID := uuid.New()
	otherServiceID := uuid.New()

	catalog.On("GetServiceByID", mock.Anything, mock.Anything).Return(&domain.Service{}, nil)

	uc := newTestUseCase(t, ledger, catalog, nil)

	first := validRequest(serviceID)
	nextHour := validRequest(serviceID)
	nextHour.Date = nextHour.Date.Add(time.Hour)
	otherService := validRequest(otherServiceID)

	for _, req := range []*Request{first, nextHour, otherService} {
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), validRequest(serviceID))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 3, ledger.count())
}
