package waitlist

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

var entryColumns = []string{
	"id",
	"business_id",
	"service_id",
	"customer_name",
	"email",
	"phone",
	"date",
	"preferred_time_range",
	"status",
	"created_at",
	"notified_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись листа ожидания в статусе pending
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"business_id",
			"service_id",
			"customer_name",
			"email",
			"phone",
			"date",
			"preferred_time_range",
			"status",
		).
		Values(
			entry.BusinessID,
			entry.ServiceID,
			entry.CustomerName,
			entry.Email,
			entry.Phone,
			entry.Date,
			entry.PreferredTimeRange,
			domain.WaitlistStatusPending,
		).
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

	entry.Status = domain.WaitlistStatusPending
	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetPendingByTarget получает ожидающие записи для бизнеса, услуги и даты
// в порядке создания (первым пришел - первым уведомлен)
func (r *Repository) GetPendingByTarget(ctx context.Context, businessID, serviceID int64, date time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{
			"business_id": businessID,
			"service_id":  serviceID,
			"date":        date,
			"status":      domain.WaitlistStatusPending,
		}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByTarget - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByTarget - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// MarkNotified переводит запись из pending в notified
// Запись покидает пул ожидающих после отправки уведомления
func (r *Repository) MarkNotified(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistStatusNotified).
		Set("notified_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.WaitlistStatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// ExpireBefore переводит в expired все ожидающие записи с датой раньше указанной
// Возвращает количество затронутых записей
func (r *Repository) ExpireBefore(ctx context.Context, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistStatusExpired).
		Where(squirrel.Eq{"status": domain.WaitlistStatusPending}).
		Where(squirrel.Lt{"date": date}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireBefore - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireBefore - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanEntries сканирует результаты запроса в слайс записей листа ожидания
func scanEntries(rows *sql.Rows) ([]*domain.WaitlistEntry, error) {
	entries := make([]*domain.WaitlistEntry, 0)

	for rows.Next() {
		var entry domain.WaitlistEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BusinessID,
			&entry.ServiceID,
			&entry.CustomerName,
			&entry.Email,
			&entry.Phone,
			&entry.Date,
			&entry.PreferredTimeRange,
			&entry.Status,
			&createdAt,
			&entry.NotifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
