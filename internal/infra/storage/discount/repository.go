package discount

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/dbmetrics"
	"github.com/nordbooking/NB-BookingCore/pkg/psqlbuilder"
)

// Код ошибки postgres "unique_violation"
const pqUniqueViolation = "23505"

var discountColumns = []string{
	"id",
	"tenant_id",
	"code",
	"type",
	"value",
	"amount",
	"expiry_date",
	"usage_limit",
	"times_used",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с промокодами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает промокод. Код хранится в канонической форме
// (нижний регистр, без пробелов по краям), уникальность - на пару tenant+code.
func (r *Repository) Create(ctx context.Context, code *domain.DiscountCode) (*domain.DiscountCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("discount_codes").
		Columns("tenant_id", "code", "type", "value", "amount", "expiry_date", "usage_limit", "status").
		Values(
			code.TenantID,
			domain.NormalizeCode(code.Code),
			code.Type,
			code.Value,
			code.Amount,
			code.ExpiryDate,
			code.UsageLimit,
			code.Status,
		).
		Suffix("RETURNING id, code, times_used, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&code.ID,
		&code.Code,
		&code.TimesUsed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrCodeTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	code.CreatedAt = createdAt.Time
	code.UpdatedAt = updatedAt.Time

	return code, nil
}

// GetByID получает промокод тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.DiscountCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(discountColumns...).
		From("discount_codes").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	code, err := r.scanDiscount(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDiscountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan discount: %v", ErrScanRow, err)
	}

	return code, nil
}

// GetByCode получает промокод тенанта по коду без учёта регистра
func (r *Repository) GetByCode(ctx context.Context, tenantID int64, code string) (*domain.DiscountCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(discountColumns...).
		From("discount_codes").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where("code = ?", domain.NormalizeCode(code)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	discount, err := r.scanDiscount(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDiscountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan discount: %v", ErrScanRow, err)
	}

	return discount, nil
}

// ListByTenant получает все промокоды тенанта
func (r *Repository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.DiscountCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(discountColumns...).
		From("discount_codes").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	codes := make([]*domain.DiscountCode, 0)
	for rows.Next() {
		code, err := r.scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return codes, nil
}

// Update обновляет параметры промокода тенанта.
// Счётчик times_used обновляется только через Redeem.
func (r *Repository) Update(ctx context.Context, code *domain.DiscountCode) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("discount_codes").
		Set("code", domain.NormalizeCode(code.Code)).
		Set("type", code.Type).
		Set("value", code.Value).
		Set("amount", code.Amount).
		Set("expiry_date", code.ExpiryDate).
		Set("usage_limit", code.UsageLimit).
		Set("status", code.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": code.ID, "tenant_id": code.TenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return ErrCodeTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDiscountNotFound
	}

	return nil
}

// Delete удаляет промокод тенанта
func (r *Repository) Delete(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("discount_codes").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
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
		return ErrDiscountNotFound
	}

	return nil
}

// Redeem атомарно инкрементирует счётчик использований промокода.
// Проверка лимита выполняется тем же UPDATE, поэтому два конкурентных
// списания последнего использования не могут пройти оба.
func (r *Repository) Redeem(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("discount_codes").
		Set("times_used", squirrel.Expr("times_used + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("(usage_limit IS NULL OR times_used < usage_limit)").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Redeem - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Redeem - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Redeem - get rows affected: %v", ErrExecQuery, err)
	}

	// Вызывающая сторона уже убедилась, что код существует,
	// поэтому 0 строк означает исчерпанный лимит
	if rowsAffected == 0 {
		return ErrDiscountExhausted
	}

	return nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanDiscount(row rowScanner) (*domain.DiscountCode, error) {
	var code domain.DiscountCode
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&code.ID,
		&code.TenantID,
		&code.Code,
		&code.Type,
		&code.Value,
		&code.Amount,
		&code.ExpiryDate,
		&code.UsageLimit,
		&code.TimesUsed,
		&code.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	code.CreatedAt = createdAt.Time
	code.UpdatedAt = updatedAt.Time

	return &code, nil
}
