package timeoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/pkg/dbmetrics"
	"github.com/salonmarket/booking-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var timeOffColumns = []string{
	"id",
	"business_id",
	"staff_id",
	"starts_at",
	"ends_at",
	"reason",
	"created_at",
}

// Repository репозиторий записей time-off
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория time-off
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись time-off
func (r *Repository) Create(ctx context.Context, entry *domain.TimeOffEntry) (*domain.TimeOffEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_off_entries").
		Columns("business_id", "staff_id", "starts_at", "ends_at", "reason").
		Values(entry.BusinessID, entry.StaffID, entry.StartsAt, entry.EndsAt, entry.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// ListOverlapping получает записи time-off сотрудника (включая записи на весь
// бизнес, staff_id IS NULL), пересекающие полуоткрытый интервал [from, to)
func (r *Repository) ListOverlapping(ctx context.Context, businessID, staffID int64, from, to time.Time) ([]*domain.TimeOffEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeOffColumns...).
		From("time_off_entries").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Or{
			squirrel.Eq{"staff_id": staffID},
			squirrel.Eq{"staff_id": nil},
		}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.TimeOffEntry, 0)
	for rows.Next() {
		var entry domain.TimeOffEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BusinessID,
			&entry.StaffID,
			&entry.StartsAt,
			&entry.EndsAt,
			&entry.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOverlapping - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// Delete удаляет запись time-off в рамках бизнеса
func (r *Repository) Delete(ctx context.Context, businessID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_off_entries").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
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
		return ErrTimeOffNotFound
	}

	return nil
}
