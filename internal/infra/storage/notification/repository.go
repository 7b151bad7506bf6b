package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PostBookingService/pkg/psqlbuilder"
)

var notificationColumns = []string{
	"id", "client_id", "title", "body", "kind", "booking_id", "is_read", "created_at", "delivered_at",
	"delivery_attempts", "next_attempt_at",
}

// Repository репозиторий уведомлений. Таблица notifications одновременно
// лента клиента и outbox: delivered_at IS NULL означает, что запись еще не доставлена.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("client_id", "title", "body", "kind", "booking_id").
		Values(n.ClientID, n.Title, n.Body, n.Kind, n.BookingID).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return n, nil
}

// CreateMany добавляет копию уведомления n каждому клиенту из clientIDs одним запросом
func (r *Repository) CreateMany(ctx context.Context, n *domain.Notification, clientIDs []int64) (int64, error) {
	if len(clientIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("notifications").
		Columns("client_id", "title", "body", "kind", "booking_id")
	for _, clientID := range clientIDs {
		insertBuilder = insertBuilder.Values(clientID, n.Title, n.Body, n.Kind, n.BookingID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateMany - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateMany - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateMany - get rows affected: %w", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

// ListByClient получает ленту клиента, новые сверху
func (r *Repository) ListByClient(ctx context.Context, clientID int64, unreadOnly bool) ([]*domain.Notification, error) {
	selectBuilder := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC", "id DESC")
	if unreadOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_read": false})
	}
	return r.list(ctx, "ListByClient", selectBuilder)
}

// ListUndelivered получает до limit недоставленных уведомлений, готовых к отправке на момент now,
// в порядке создания. Записи с maxAttempts неудачными попытками и записи, чей next_attempt_at
// еще не наступил, пропускаются. Внутри транзакции строки блокируются с SKIP LOCKED, чтобы
// параллельные экземпляры воркера не забирали одни и те же записи.
func (r *Repository) ListUndelivered(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*domain.Notification, error) {
	selectBuilder := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"delivered_at": nil}).
		Where(squirrel.Lt{"delivery_attempts": maxAttempts}).
		Where(squirrel.Or{
			squirrel.Eq{"next_attempt_at": nil},
			squirrel.LtOrEq{"next_attempt_at": now},
		}).
		OrderBy("id ASC").
		Limit(uint64(limit))
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}
	return r.list(ctx, "ListUndelivered", selectBuilder)
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(
			&n.ID,
			&n.ClientID,
			&n.Title,
			&n.Body,
			&n.Kind,
			&n.BookingID,
			&n.IsRead,
			&n.CreatedAt,
			&n.DeliveredAt,
			&n.DeliveryAttempts,
			&n.NextAttemptAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}
	return notifications, nil
}

// MarkRead отмечает уведомление клиента прочитанным
func (r *Repository) MarkRead(ctx context.Context, id, clientID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "client_id": clientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectRows(ctx, executor, "MarkRead", query, args)
}

// MarkDelivered проставляет delivered_at для доставленных уведомлений
func (r *Repository) MarkDelivered(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("delivered_at", at).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkDelivered - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkDelivered - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

// MarkFailed увеличивает счетчик попыток доставки и откладывает следующую до nextAttemptAt
func (r *Repository) MarkFailed(ctx context.Context, id int64, nextAttemptAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("delivery_attempts", squirrel.Expr("delivery_attempts + 1")).
		Set("next_attempt_at", nextAttemptAt).
		Where(squirrel.Eq{"id": id, "delivered_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkFailed - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

// ReassignClient переносит все уведомления клиента fromClientID на toClientID
func (r *Repository) ReassignClient(ctx context.Context, fromClientID, toClientID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("client_id", toClientID).
		Where(squirrel.Eq{"client_id": fromClientID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReassignClient - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReassignClient - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReassignClient - get rows affected: %w", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

func (r *Repository) execExpectRows(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
