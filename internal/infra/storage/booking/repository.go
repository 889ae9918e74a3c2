package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/psqlbuilder"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"

	uniqueSlotConstraint = "bookings_service_id_date_key"
)

// bookingWithServiceColumns колонки бронирования вместе с забронированной услугой
var bookingWithServiceColumns = []string{
	"b.id",
	"b.service_id",
	"b.user_id",
	"b.date",
	"b.created_at",
	"s.id",
	"s.barbershop_id",
	"s.name",
	"s.description",
	"s.price",
	"s.image_url",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Занятость слота проверяет ограничение UNIQUE (service_id, date):
// из конкурентных вставок одного слота успешна ровно одна, остальные получают ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.Date = booking.Date.UTC()

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("id", "service_id", "user_id", "date").
		Values(booking.ID, booking.ServiceID, booking.UserID, booking.Date).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch {
			case pqErr.Code == pqUniqueViolation && pqErr.Constraint == uniqueSlotConstraint:
				return nil, fmt.Errorf("%w: Create - service %s at %s",
					ErrSlotTaken, booking.ServiceID, booking.Date.Format(time.RFC3339))
			case pqErr.Code == pqForeignKeyViolation:
				return nil, fmt.Errorf("%w: Create - service %s", ErrServiceNotFound, booking.ServiceID)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.UTC()

	return booking, nil
}

// GetByID получает бронирование по ID (без услуги)
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "service_id", "user_id", "date", "created_at").
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.UserID,
		&booking.Date,
		&booking.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.Date = booking.Date.UTC()
	booking.CreatedAt = booking.CreatedAt.UTC()

	return &booking, nil
}

// ListByServiceAndPeriod получает бронирования услуги в полуоткрытом интервале [from, to)
// Отсортированы по дате по возрастанию
func (r *Repository) ListByServiceAndPeriod(ctx context.Context, serviceID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingWithServiceColumns...).
		From("bookings b").
		Join("barbershop_services s ON s.id = b.service_id").
		Where(squirrel.Eq{"b.service_id": serviceID}).
		Where(squirrel.GtOrEq{"b.date": from.UTC()}).
		Where(squirrel.Lt{"b.date": to.UTC()}).
		OrderBy("b.date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceAndPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListByUserID получает все бронирования пользователя, сначала новые
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingWithServiceColumns...).
		From("bookings b").
		Join("barbershop_services s ON s.id = b.service_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Delete удаляет бронирование (отмена = физическое удаление)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований вместе с услугой
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var service domain.Service

		err := rows.Scan(
			&booking.ID,
			&booking.ServiceID,
			&booking.UserID,
			&booking.Date,
			&booking.CreatedAt,
			&service.ID,
			&service.BarbershopID,
			&service.Name,
			&service.Description,
			&service.Price,
			&service.ImageURL,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.Date = booking.Date.UTC()
		booking.CreatedAt = booking.CreatedAt.UTC()
		booking.Service = &service

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
