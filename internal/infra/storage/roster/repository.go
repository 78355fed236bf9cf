package roster

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	"github.com/znsteam/ZNS-MassageService/pkg/dbmetrics"
	"github.com/znsteam/ZNS-MassageService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигурации: вечеринки, специалисты, рабочие окна
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetParties получает все вечеринки
func (r *Repository) GetParties(ctx context.Context) ([]*domain.Party, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"key",
		"title",
		"starts_at",
		"ends_at",
		"table_capacity",
	).
		From("parties").
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetParties - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetParties - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	parties := make([]*domain.Party, 0)
	for rows.Next() {
		var party domain.Party
		if err := rows.Scan(
			&party.Key,
			&party.Title,
			&party.StartsAt,
			&party.EndsAt,
			&party.TableCapacity,
		); err != nil {
			return nil, fmt.Errorf("%w: GetParties - scan row: %v", ErrScanRow, err)
		}
		parties = append(parties, &party)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetParties - rows error: %v", ErrScanRow, err)
	}

	return parties, nil
}

// GetSpecialists получает всех специалистов вместе с их рабочими окнами
func (r *Repository) GetSpecialists(ctx context.Context) ([]*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"table_required",
		"min_duration_slots",
		"max_duration_slots",
		"notify_on_booking",
		"notify_before_session",
	).
		From("specialists").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialists - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialists - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	specialists := make([]*domain.Specialist, 0)
	byID := make(map[int64]*domain.Specialist)

	for rows.Next() {
		var sp domain.Specialist
		if err := rows.Scan(
			&sp.ID,
			&sp.Name,
			&sp.TableRequired,
			&sp.MinDurationSlots,
			&sp.MaxDurationSlots,
			&sp.NotifyOnBooking,
			&sp.NotifyBeforeSession,
		); err != nil {
			return nil, fmt.Errorf("%w: GetSpecialists - scan row: %v", ErrScanRow, err)
		}
		specialists = append(specialists, &sp)
		byID[sp.ID] = &sp
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSpecialists - rows error: %v", ErrScanRow, err)
	}

	windows, err := r.getWorkWindows(ctx, executor)
	if err != nil {
		return nil, err
	}

	for _, w := range windows {
		sp, ok := byID[w.SpecialistID]
		if !ok {
			// Окно осиротевшего специалиста; пропускаем
			continue
		}
		sp.WorkWindows = append(sp.WorkWindows, w)
	}

	return specialists, nil
}

// UpdateNotifyFlags обновляет флаги уведомлений специалиста
// Единственная конфигурационная мутация, допустимая в рантайме
func (r *Repository) UpdateNotifyFlags(ctx context.Context, specialistID int64, notifyOnBooking, notifyBeforeSession bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("specialists").
		Set("notify_on_booking", notifyOnBooking).
		Set("notify_before_session", notifyBeforeSession).
		Where(squirrel.Eq{"id": specialistID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateNotifyFlags - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateNotifyFlags - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotifyFlags - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpecialistNotFound
	}

	return nil
}

func (r *Repository) getWorkWindows(ctx context.Context, executor DBExecutor) ([]domain.WorkWindow, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"specialist_id",
		"party_key",
		"starts_at",
		"ends_at",
	).
		From("work_windows").
		OrderBy("specialist_id ASC, starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWorkWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.WorkWindow, 0)
	for rows.Next() {
		var w domain.WorkWindow
		if err := rows.Scan(
			&w.ID,
			&w.SpecialistID,
			&w.PartyKey,
			&w.StartsAt,
			&w.EndsAt,
		); err != nil {
			return nil, fmt.Errorf("%w: getWorkWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWorkWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
