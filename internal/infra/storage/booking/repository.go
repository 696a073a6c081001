package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"carservice/internal/domain"
	"carservice/pkg/dbmetrics"
	"carservice/pkg/psqlbuilder"
)

// bookingColumns список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"user_id",
	"service_id",
	"station_id",
	"scheduled_date",
	"duration_minutes",
	"total_price",
	"status",
	"vehicle_details",
	"special_instructions",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их историей статусов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её -
// usecase создания бронирования пишет бронирование и первую запись
// истории в одной сериализуемой транзакции
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"service_id",
			"station_id",
			"scheduled_date",
			"duration_minutes",
			"total_price",
			"status",
			"vehicle_details",
			"special_instructions",
		).
		Values(
			booking.UserID,
			booking.ServiceID,
			booking.StationID,
			booking.ScheduledDate,
			booking.DurationMinutes,
			booking.TotalPrice,
			booking.Status,
			booking.VehicleDetails,
			booking.SpecialInstructions,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserWithFilter получает страницу бронирований пользователя и общее
// количество строк под фильтром (для пагинации)
func (r *Repository) GetByUserWithFilter(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{"user_id": filter.UserID}

	countBuilder := psqlbuilder.Select("COUNT(*)").From("bookings").Where(where)
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("created_at DESC")

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"status": *filter.Status})
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - scan count: %w", ErrScanRow, err)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// GetActiveInWindow получает активные бронирования станции (любая услуга),
// время начала которых попадает в [from, to] (границы включительно)
//
// Используется проверкой пересечений при создании: внутри транзакции
// выборка блокируется FOR UPDATE, чтобы конкурентные создания на одну
// станцию сериализовались и не прошли проверку одновременно
func (r *Repository) GetActiveInWindow(ctx context.Context, stationID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"station_id": stationID}).
		Where(squirrel.GtOrEq{"scheduled_date": from}).
		Where(squirrel.LtOrEq{"scheduled_date": to}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("scheduled_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInWindow - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByStationAndService получает активные бронирования конкретной
// услуги на станции за [from, to] (границы включительно)
//
// Используется генератором сетки слотов: одна выборка на весь день,
// без блокировок (выдача слотов - чтение без записи)
func (r *Repository) GetActiveByStationAndService(ctx context.Context, stationID, serviceID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"station_id": stationID}).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.GtOrEq{"scheduled_date": from}).
		Where(squirrel.LtOrEq{"scheduled_date": to}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("scheduled_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStationAndService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStationAndService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Условие status = from защищает от конкурентного перехода: проверка
// допустимости перехода делается до UPDATE по прочитанному статусу.
// Запись в историю статусов делает вызывающий код в той же транзакции
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": from,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	// Бронирования не удаляются, поэтому 0 строк означает,
	// что статус успела изменить конкурентная операция
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// AppendStatusHistory добавляет запись в журнал истории статусов
// Журнал append-only: записи никогда не изменяются и не удаляются
func (r *Repository) AppendStatusHistory(ctx context.Context, entry *domain.BookingStatusHistory) (*domain.BookingStatusHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_status_history").
		Columns("booking_id", "status", "notes", "changed_by").
		Values(entry.BookingID, entry.Status, entry.Notes, entry.ChangedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AppendStatusHistory - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: AppendStatusHistory - execute insert: %w", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	return entry, nil
}

// GetStatusHistory получает историю статусов бронирования, новые записи первыми
func (r *Repository) GetStatusHistory(ctx context.Context, bookingID int64) ([]*domain.BookingStatusHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "status", "notes", "changed_by", "created_at").
		From("booking_status_history").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStatusHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatusHistory - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.BookingStatusHistory, 0)
	for rows.Next() {
		var entry domain.BookingStatusHistory
		var createdAt sql.NullTime

		if err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.Status,
			&entry.Notes,
			&entry.ChangedBy,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetStatusHistory - scan row: %w", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatusHistory - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

// activeStatusStrings статусы, занимающие слот, в виде строк для SQL IN
func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ServiceID,
		&booking.StationID,
		&booking.ScheduledDate,
		&booking.DurationMinutes,
		&booking.TotalPrice,
		&booking.Status,
		&booking.VehicleDetails,
		&booking.SpecialInstructions,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

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
