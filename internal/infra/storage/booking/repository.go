package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	"github.com/znsteam/ZNS-MassageService/pkg/dbmetrics"
	"github.com/znsteam/ZNS-MassageService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"specialist_id",
	"client_id",
	"party_key",
	"start_slot",
	"length_slots",
	"client_notified",
	"specialist_notified",
	"cancelled_at",
	"created_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Частичный уникальный индекс по (specialist_id, party_key, start_slot)
// для активных записей страхует от двойной вставки даже вне критической секции
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"specialist_id",
			"client_id",
			"party_key",
			"start_slot",
			"length_slots",
		).
		Values(
			booking.SpecialistID,
			booking.ClientID,
			booking.PartyKey,
			booking.StartSlot,
			booking.LengthSlots,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

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

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveByParty получает все активные бронирования вечеринки
// Внутри транзакции строки блокируются (FOR UPDATE) - этот запрос
// используется при ре-валидации доступности перед коммитом
func (r *Repository) GetActiveByParty(ctx context.Context, partyKey string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"party_key": partyKey}).
		Where("cancelled_at IS NULL").
		OrderBy("start_slot ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByParty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByParty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByClientAndParty получает активные бронирования клиента
// на вечеринке у всех специалистов
func (r *Repository) GetActiveByClientAndParty(ctx context.Context, clientID int64, partyKey string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID, "party_key": partyKey}).
		Where("cancelled_at IS NULL").
		OrderBy("start_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByClientAndParty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByClientAndParty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByClient получает все бронирования клиента, включая отмененные
func (r *Repository) GetByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("party_key ASC, start_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveBySpecialistAndParty получает активные бронирования специалиста на вечеринке
func (r *Repository) GetActiveBySpecialistAndParty(ctx context.Context, specialistID int64, partyKey string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"specialist_id": specialistID, "party_key": partyKey}).
		Where("cancelled_at IS NULL").
		OrderBy("start_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySpecialistAndParty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySpecialistAndParty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel помечает бронирование отмененным
// Повторная отмена уже отмененного бронирования вернет ErrBookingNotFound -
// вызывающий слой решает, считать ли это ошибкой
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("cancelled_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// MarkClientNotified отмечает, что клиент уведомлен о бронировании
func (r *Repository) MarkClientNotified(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("client_notified", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkClientNotified - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkClientNotified")
}

// MarkSpecialistNotified отмечает, что специалист уведомлен о бронировании
func (r *Repository) MarkSpecialistNotified(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("specialist_notified", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSpecialistNotified - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkSpecialistNotified")
}

// ListUnnotified получает активные бронирования вечеринки, о которых
// еще не уведомлена указанная сторона
// Читается внешним рассыльщиком уведомлений
func (r *Repository) ListUnnotified(ctx context.Context, partyKey string, forSpecialist bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	flagColumn := "client_notified"
	if forSpecialist {
		flagColumn = "specialist_notified"
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"party_key": partyKey, flagColumn: false}).
		Where("cancelled_at IS NULL").
		OrderBy("start_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUnnotified - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnnotified - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt sql.NullTime
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.SpecialistID,
		&booking.ClientID,
		&booking.PartyKey,
		&booking.StartSlot,
		&booking.LengthSlots,
		&booking.ClientNotified,
		&booking.SpecialistNotified,
		&cancelledAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

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
