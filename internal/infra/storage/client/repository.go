package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PostBookingService/pkg/psqlbuilder"
)

const (
	pgUniqueViolation   = "23505"
	phoneNormUniqueName = "clients_phone_norm_uniq"
)

var clientColumns = []string{
	"id",
	"device_id",
	"phone",
	"phone_norm",
	"loyalty_points",
	"name",
	"email",
	"telegram",
	"instagram",
	"selected_post_id",
	"selected_category",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID. Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByDeviceID получает клиента по идентификатору устройства
func (r *Repository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Client, error) {
	return r.getOne(ctx, "GetByDeviceID", squirrel.Eq{"device_id": deviceID})
}

// FindByPhoneNorm ищет другого клиента (id != excludeID) с тем же нормализованным номером.
// Внутри транзакции найденная строка блокируется (FOR UPDATE).
func (r *Repository) FindByPhoneNorm(ctx context.Context, phoneNorm string, excludeID int64) (*domain.Client, error) {
	return r.getOne(ctx, "FindByPhoneNorm", squirrel.And{
		squirrel.Eq{"phone_norm": phoneNorm},
		squirrel.NotEq{"id": excludeID},
	})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(where)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	c, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %w", ErrScanRow, op, err)
	}
	return c, nil
}

// CreateOrGet создает клиента для устройства или возвращает существующего.
// created = true, если запись создана этим вызовом.
func (r *Repository) CreateOrGet(ctx context.Context, deviceID string) (c *domain.Client, created bool, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("device_id").
		Values(deviceID).
		Suffix("ON CONFLICT (device_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: CreateOrGet - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		// запись уже была
	case err != nil:
		return nil, false, fmt.Errorf("%w: CreateOrGet - execute insert: %w", ErrExecQuery, err)
	default:
		created = true
	}

	c, err = r.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, false, err
	}
	return c, created, nil
}

// Update перезаписывает профиль и телефон клиента
func (r *Repository) Update(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("phone", c.Phone).
		Set("phone_norm", c.PhoneNorm).
		Set("name", c.Name).
		Set("email", c.Email).
		Set("telegram", c.Telegram).
		Set("instagram", c.Instagram).
		Set("selected_post_id", c.SelectedPostID).
		Set("selected_category", c.SelectedCategory).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation && pqErr.Constraint == phoneNormUniqueName {
			return nil, fmt.Errorf("%w: client=%d", ErrPhoneTaken, c.ID)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}
	return c, nil
}

// SetLoyaltyPoints записывает баланс баллов
func (r *Repository) SetLoyaltyPoints(ctx context.Context, id int64, points int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("loyalty_points", points).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetLoyaltyPoints - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetLoyaltyPoints - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetLoyaltyPoints - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Delete удаляет клиента. Используется только при слиянии записей,
// после переноса бронирований и уведомлений.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// ListIDs получает ID всех клиентов, используется для рассылки новостей
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("clients").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListIDs - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDs - rows error: %w", ErrScanRow, err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.DeviceID,
		&c.Phone,
		&c.PhoneNorm,
		&c.LoyaltyPoints,
		&c.Name,
		&c.Email,
		&c.Telegram,
		&c.Instagram,
		&c.SelectedPostID,
		&c.SelectedCategory,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
