package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PostBookingService/pkg/psqlbuilder"
)

// pgExclusionViolation SQLSTATE нарушения EXCLUDE ограничения bookings_no_overlap
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"service_id",
	"post_id",
	"client_id",
	"start_at",
	"end_at",
	"duration_minutes",
	"status",
	"notes",
	"service_name",
	"service_price",
	"in_progress_started_at",
	"completed_at",
	"cancelled_at",
	"rating",
	"rating_comment",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если вставка нарушила ограничение непересечения интервалов, возвращает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"post_id",
			"client_id",
			"start_at",
			"end_at",
			"duration_minutes",
			"status",
			"notes",
			"service_name",
			"service_price",
		).
		Values(
			booking.ServiceID,
			booking.PostID,
			booking.ClientID,
			booking.StartAt,
			booking.EndAt,
			booking.DurationMinutes,
			booking.Status,
			booking.Notes,
			booking.ServiceName,
			booking.ServicePrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
			return nil, fmt.Errorf("%w: post=%d start=%s", ErrSlotTaken, booking.PostID, booking.StartAt.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список бронирований клиента, новые сверху.
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByPostInRange получает неотмененные бронирования поста, пересекающие [from, to).
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) GetActiveByPostInRange(ctx context.Context, postID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"post_id": postID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPostInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPostInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListWithFilter получает бронирования для административной консоли
//
// Примеры использования:
//
// 1. Все активные бронирования:
//    filter := domain.BookingsFilter{}
//
// 2. Бронирования поста за день:
//    filter := domain.BookingsFilter{PostID: &postID, From: &dayStart, To: &dayEnd}
//
// 3. Только ожидающие подтверждения:
//    status := domain.StatusPending
//    filter := domain.BookingsFilter{Status: &status}
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("start_at ASC")

	if filter.PostID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"post_id": *filter.PostID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListInProgress получает все бронирования в статусе in_progress
func (r *Repository) ListInProgress(ctx context.Context) ([]*domain.Booking, error) {
	status := domain.StatusInProgress
	return r.ListWithFilter(ctx, domain.BookingsFilter{Status: &status})
}

// UpdateStatus переводит бронирование в статус status и проставляет метку времени:
// in_progress_started_at записывается один раз (COALESCE), completed_at и cancelled_at
// при входе в соответствующий статус. Возвращает обновленное бронирование.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, at time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id})

	switch status {
	case domain.StatusInProgress:
		updateBuilder = updateBuilder.Set("in_progress_started_at", squirrel.Expr("COALESCE(in_progress_started_at, ?)", at))
	case domain.StatusCompleted:
		updateBuilder = updateBuilder.Set("completed_at", at)
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.Set("cancelled_at", at)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// Rate сохраняет оценку и комментарий клиента
func (r *Repository) Rate(ctx context.Context, id int64, rating int, comment *string, at time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("rating", rating).
		Set("rating_comment", comment).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Rate - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Rate - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// ReassignClient переносит все бронирования клиента fromClientID на toClientID.
// Возвращает количество перенесенных бронирований.
func (r *Repository) ReassignClient(ctx context.Context, fromClientID, toClientID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("client_id", toClientID).
		Set("updated_at", squirrel.Expr("NOW()")).
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var rating sql.NullInt32

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.PostID,
		&booking.ClientID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.Notes,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.InProgressStartedAt,
		&booking.CompletedAt,
		&booking.CancelledAt,
		&rating,
		&booking.RatingComment,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		v := int(rating.Int32)
		booking.Rating = &v
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
