package barbershop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/psqlbuilder"
)

var barbershopColumns = []string{
	"id",
	"name",
	"address",
	"description",
	"image_url",
	"phones",
}

var serviceColumns = []string{
	"id",
	"barbershop_id",
	"name",
	"description",
	"price",
	"image_url",
}

// likeEscaper экранирует спецсимволы LIKE в пользовательском вводе
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Repository репозиторий каталога барбершопов и их услуг (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает барбершопы, отсортированные по названию
// Search ищет подстроку в названии барбершопа, ServiceName в названиях его услуг (без учета регистра)
func (r *Repository) List(ctx context.Context, filter domain.BarbershopFilter) ([]*domain.Barbershop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(barbershopColumns...).
		From("barbershops").
		OrderBy("name ASC")

	if filter.Search != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"name": containsPattern(filter.Search)})
	}
	if filter.ServiceName != "" {
		selectBuilder = selectBuilder.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM barbershop_services s WHERE s.barbershop_id = barbershops.id AND s.name ILIKE ?)",
			containsPattern(filter.ServiceName),
		))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	barbershops := make([]*domain.Barbershop, 0)
	for rows.Next() {
		var b domain.Barbershop
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Description, &b.ImageURL, pq.Array(&b.Phones)); err != nil {
			return nil, fmt.Errorf("%w: List - scan barbershop: %v", ErrScanRow, err)
		}
		barbershops = append(barbershops, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return barbershops, nil
}

// GetByID получает барбершоп по ID (без услуг)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Barbershop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(barbershopColumns...).
		From("barbershops").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Barbershop
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Name,
		&b.Address,
		&b.Description,
		&b.ImageURL,
		pq.Array(&b.Phones),
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarbershopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan barbershop: %v", ErrScanRow, err)
	}

	return &b, nil
}

// ListServices получает услуги барбершопа, отсортированные по названию
func (r *Repository) ListServices(ctx context.Context, barbershopID uuid.UUID) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("barbershop_services").
		Where(squirrel.Eq{"barbershop_id": barbershopID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.BarbershopID, &s.Name, &s.Description, &s.Price, &s.ImageURL); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan service: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("barbershop_services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BarbershopID,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.ImageURL,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}
