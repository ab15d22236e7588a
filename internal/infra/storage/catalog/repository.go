package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/dbmetrics"
	"github.com/nordbooking/NB-BookingCore/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"tenant_id",
	"name",
	"description",
	"base_price",
	"duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

var optionColumns = []string{
	"id",
	"service_id",
	"name",
	"type",
	"is_required",
	"price_impact_type",
	"price_impact_value",
	"percent_value",
	"sort_order",
	"choices",
	"sqm_ranges",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг и их опций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateService создает услугу тенанта
func (r *Repository) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("tenant_id", "name", "description", "base_price", "duration_minutes", "is_active").
		Values(service.TenantID, service.Name, service.Description, service.BasePrice, service.DurationMinutes, service.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return service, nil
}

// GetServiceWithOptions получает услугу тенанта вместе с опциями.
// Опции возвращаются в порядке sort_order - так, как они настроены
// в кабинете тенанта.
func (r *Repository) GetServiceWithOptions(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceWithOptions - build select query: %v", ErrBuildQuery, err)
	}

	service, err := r.scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceWithOptions - scan service: %v", ErrScanRow, err)
	}

	options, err := r.getOptionsByService(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	service.Options = options

	return service, nil
}

// ListServicesByTenant получает услуги тенанта.
// По умолчанию только активные; includeInactive добавляет выключенные.
func (r *Repository) ListServicesByTenant(ctx context.Context, tenantID int64, includeInactive bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("name ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServicesByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServicesByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := r.scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServicesByTenant - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServicesByTenant - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// UpdateService обновляет услугу тенанта
func (r *Repository) UpdateService(ctx context.Context, service *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", service.Name).
		Set("description", service.Description).
		Set("base_price", service.BasePrice).
		Set("duration_minutes", service.DurationMinutes).
		Set("is_active", service.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": service.ID, "tenant_id": service.TenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateService - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateService - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// DeleteService удаляет услугу тенанта вместе с опциями (ON DELETE CASCADE)
func (r *Repository) DeleteService(ctx context.Context, tenantID, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": serviceID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteService - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// CreateOption создает опцию услуги
func (r *Repository) CreateOption(ctx context.Context, option *domain.Option) (*domain.Option, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	choices, err := marshalChoices(option.Choices)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOption - %v", ErrBuildQuery, err)
	}
	sqmRanges, err := marshalSqmRanges(option.SqmRanges)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOption - %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("service_options").
		Columns("service_id", "name", "type", "is_required", "price_impact_type",
			"price_impact_value", "percent_value", "sort_order", "choices", "sqm_ranges").
		Values(option.ServiceID, option.Name, option.Type, option.IsRequired, option.PriceImpactType,
			option.PriceImpactValue, option.PercentValue, option.SortOrder, choices, sqmRanges).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOption - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&option.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOption - execute insert: %v", ErrExecQuery, err)
	}

	option.CreatedAt = createdAt.Time
	option.UpdatedAt = updatedAt.Time

	return option, nil
}

// UpdateOption обновляет опцию услуги
func (r *Repository) UpdateOption(ctx context.Context, option *domain.Option) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	choices, err := marshalChoices(option.Choices)
	if err != nil {
		return fmt.Errorf("%w: UpdateOption - %v", ErrBuildQuery, err)
	}
	sqmRanges, err := marshalSqmRanges(option.SqmRanges)
	if err != nil {
		return fmt.Errorf("%w: UpdateOption - %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("service_options").
		Set("name", option.Name).
		Set("type", option.Type).
		Set("is_required", option.IsRequired).
		Set("price_impact_type", option.PriceImpactType).
		Set("price_impact_value", option.PriceImpactValue).
		Set("percent_value", option.PercentValue).
		Set("sort_order", option.SortOrder).
		Set("choices", choices).
		Set("sqm_ranges", sqmRanges).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": option.ID, "service_id": option.ServiceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateOption - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateOption - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateOption - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOptionNotFound
	}

	return nil
}

// DeleteOption удаляет опцию услуги
func (r *Repository) DeleteOption(ctx context.Context, serviceID, optionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("service_options").
		Where(squirrel.Eq{"id": optionID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOption - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOption - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOption - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOptionNotFound
	}

	return nil
}

// getOptionsByService загружает опции услуги в порядке sort_order
func (r *Repository) getOptionsByService(ctx context.Context, serviceID int64) ([]domain.Option, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(optionColumns...).
		From("service_options").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("sort_order ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOptionsByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOptionsByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	options := make([]domain.Option, 0)
	for rows.Next() {
		var option domain.Option
		var choices, sqmRanges []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&option.ID,
			&option.ServiceID,
			&option.Name,
			&option.Type,
			&option.IsRequired,
			&option.PriceImpactType,
			&option.PriceImpactValue,
			&option.PercentValue,
			&option.SortOrder,
			&choices,
			&sqmRanges,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getOptionsByService - scan row: %v", ErrScanRow, err)
		}

		option.Choices, err = unmarshalChoices(choices)
		if err != nil {
			return nil, fmt.Errorf("%w: getOptionsByService - %v", ErrScanRow, err)
		}
		option.SqmRanges, err = unmarshalSqmRanges(sqmRanges)
		if err != nil {
			return nil, fmt.Errorf("%w: getOptionsByService - %v", ErrScanRow, err)
		}

		option.CreatedAt = createdAt.Time
		option.UpdatedAt = updatedAt.Time

		options = append(options, option)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getOptionsByService - rows error: %v", ErrScanRow, err)
	}

	return options, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.TenantID,
		&service.Name,
		&service.Description,
		&service.BasePrice,
		&service.DurationMinutes,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
