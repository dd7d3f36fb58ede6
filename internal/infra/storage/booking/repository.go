package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	"github.com/m04kA/WorkSlot-BookingService/pkg/dbmetrics"
	"github.com/m04kA/WorkSlot-BookingService/pkg/psqlbuilder"
)

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"provider_id",
	"customer_name",
	"customer_email",
	"customer_comment",
	"start_time",
	"end_time",
	"status",
	"provider_comment",
	"hold_expires_at",
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

// Create сохраняет новое бронирование.
// Частичный уникальный индекс по (provider_id, start_time, end_time) среди занимающих статусов
// превращается в ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(bookingColumns...).
		Values(
			booking.ID,
			booking.ProviderID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerComment,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.ProviderComment,
			booking.HoldExpiresAt,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return execError("Create - execute insert", err)
	}

	return nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetOccupying возвращает бронирования провайдера в занимающих статусах, пересекающиеся с [from, to).
// Истёкшие удержания тоже попадают в выборку, их отсеивает генератор слотов по времени.
func (r *Repository) GetOccupying(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"status": statusStrings(domain.OccupyingStatuses)}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetOccupying - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByProviderWithFilter получает бронирования провайдера с фильтрацией по статусу и периоду.
// Сортировка от новых к старым.
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"provider_id": filter.ProviderID}).
		OrderBy("start_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetByProviderWithFilter - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListExpiredHolds возвращает до limit бронирований в ожидании решения, чьё удержание истекло к now
func (r *Repository) ListExpiredHolds(ctx context.Context, now time.Time, limit uint64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"status": statusStrings(domain.ActionableStatuses)}).
		Where(squirrel.Lt{"hold_expires_at": now}).
		OrderBy("hold_expires_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredHolds - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("ListExpiredHolds - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ExpireProviderHolds переводит в expired все истёкшие удержания провайдера, возвращает их количество
func (r *Repository) ExpireProviderHolds(ctx context.Context, providerID int64, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", domain.StatusExpired).
		Set("updated_at", now).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActionableStatuses)}).
		Where(squirrel.Lt{"hold_expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireProviderHolds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError("ExpireProviderHolds - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireProviderHolds - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// TransitionStatus меняет статус, только если текущий статус равен from.
// Если бронирование не найдено или статус уже другой, возвращает ErrStatusConflict.
func (r *Repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus, providerComment *string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(bookingsTable).
		Set("status", to).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	// Комментарий провайдера пишется только при его решении
	if to == domain.StatusConfirmed || to == domain.StatusDeclined {
		updateBuilder = updateBuilder.Set("provider_comment", providerComment)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("TransitionStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: TransitionStatus - booking %s is no longer %s", ErrStatusConflict, id, from)
	}

	return nil
}

// LockProvider берёт транзакционную advisory-блокировку провайдера.
// Работает только внутри транзакции, блокировка снимается при её завершении.
func (r *Repository) LockProvider(ctx context.Context, providerID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockProvider - advisory lock requires a transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", providerID); err != nil {
		return execError("LockProvider - acquire advisory lock", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var customerComment, providerComment sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.ProviderID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&customerComment,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&providerComment,
		&booking.HoldExpiresAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customerComment.Valid {
		booking.CustomerComment = &customerComment.String
	}
	if providerComment.Valid {
		booking.ProviderComment = &providerComment.String
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
