package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/dbmetrics"
	"github.com/nordbooking/NB-BookingCore/pkg/psqlbuilder"
)

var recurringColumns = []string{
	"id",
	"tenant_id",
	"day_of_week",
	"start_time",
	"end_time",
	"capacity",
	"is_active",
	"created_at",
	"updated_at",
}

var overrideColumns = []string{
	"id",
	"tenant_id",
	"override_date",
	"is_unavailable",
	"start_time",
	"end_time",
	"capacity",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписанием тенанта:
// недельным шаблоном слотов и переопределениями дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateRecurring создает слот недельного шаблона
func (r *Repository) CreateRecurring(ctx context.Context, slot *domain.RecurringSlot) (*domain.RecurringSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("recurring_slots").
		Columns("tenant_id", "day_of_week", "start_time", "end_time", "capacity", "is_active").
		Values(slot.TenantID, slot.DayOfWeek, slot.StartTime, slot.EndTime, slot.Capacity, slot.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRecurring - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRecurring - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// UpdateRecurring обновляет слот недельного шаблона тенанта
func (r *Repository) UpdateRecurring(ctx context.Context, slot *domain.RecurringSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recurring_slots").
		Set("day_of_week", slot.DayOfWeek).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("capacity", slot.Capacity).
		Set("is_active", slot.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID, "tenant_id": slot.TenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRecurring - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRecurring - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRecurring - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteRecurring удаляет слот недельного шаблона тенанта
func (r *Repository) DeleteRecurring(ctx context.Context, tenantID, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("recurring_slots").
		Where(squirrel.Eq{"id": slotID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteRecurring - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteRecurring - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteRecurring - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// GetRecurringByDay получает слоты недельного шаблона на день недели (0=Вс..6=Сб)
func (r *Repository) GetRecurringByDay(ctx context.Context, tenantID int64, dayOfWeek int) ([]*domain.RecurringSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recurringColumns...).
		From("recurring_slots").
		Where(squirrel.Eq{"tenant_id": tenantID, "day_of_week": dayOfWeek}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRecurringSlots(rows)
}

// GetRecurringByTenant получает весь недельный шаблон тенанта
func (r *Repository) GetRecurringByTenant(ctx context.Context, tenantID int64) ([]*domain.RecurringSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recurringColumns...).
		From("recurring_slots").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRecurringSlots(rows)
}

// SetRecurringDayStatus массово включает или выключает все слоты дня недели.
// Возвращает число затронутых слотов.
func (r *Repository) SetRecurringDayStatus(ctx context.Context, tenantID int64, dayOfWeek int, isActive bool) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recurring_slots").
		Set("is_active", isActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SetRecurringDayStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SetRecurringDayStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SetRecurringDayStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// UpsertOverride создает или заменяет переопределение даты.
// На пару tenant+date существует не более одного переопределения,
// поэтому повторная запись той же даты перезаписывает предыдущую.
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("tenant_id", "override_date", "is_unavailable", "start_time", "end_time", "capacity").
		Values(override.TenantID, override.Date, override.IsUnavailable, override.StartTime, override.EndTime, override.Capacity).
		Suffix(`ON CONFLICT (tenant_id, override_date) DO UPDATE SET
			is_unavailable = EXCLUDED.is_unavailable,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			capacity = EXCLUDED.capacity,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// DeleteOverride удаляет переопределение даты тенанта
func (r *Repository) DeleteOverride(ctx context.Context, tenantID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"tenant_id": tenantID, "override_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// GetOverrideByDate получает переопределение конкретной даты
func (r *Repository) GetOverrideByDate(ctx context.Context, tenantID int64, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"tenant_id": tenantID, "override_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByDate - build select query: %v", ErrBuildQuery, err)
	}

	override, err := r.scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByDate - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// GetOverridesInRange получает переопределения дат в периоде [from, to]
func (r *Repository) GetOverridesInRange(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		override, err := r.scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesInRange - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRecurringSlots(rows *sql.Rows) ([]*domain.RecurringSlot, error) {
	slots := make([]*domain.RecurringSlot, 0)

	for rows.Next() {
		var slot domain.RecurringSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.TenantID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
			&slot.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRecurringSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRecurringSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func (r *Repository) scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var override domain.DateOverride
	var capacity sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.TenantID,
		&override.Date,
		&override.IsUnavailable,
		&override.StartTime,
		&override.EndTime,
		&capacity,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.Capacity = int(capacity.Int64)
	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
