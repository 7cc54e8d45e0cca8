package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/pkg/dbmetrics"
	"github.com/salonmarket/booking-service/pkg/psqlbuilder"
	"github.com/salonmarket/booking-service/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий недельных расписаний сотрудников
// Расписание хранится в двух таблицах: staff_schedules (одна строка на
// сотрудника и день недели) и schedule_breaks (перерывы дня)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeek получает недельное расписание сотрудника
// Возвращает ErrScheduleNotFound, если у сотрудника нет ни одной строки расписания
func (r *Repository) GetWeek(ctx context.Context, staffID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"is_working",
		"start_time",
		"end_time",
	).
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var week domain.WeeklySchedule
	scheduleIDs := make(map[int64]time.Weekday)
	found := false

	for rows.Next() {
		var (
			id        int64
			weekday   int
			isWorking bool
			startTime sql.NullString
			endTime   sql.NullString
		)

		if err := rows.Scan(&id, &weekday, &isWorking, &startTime, &endTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan day: %v", ErrScanRow, err)
		}

		found = true
		day := domain.DaySchedule{IsWorking: isWorking}
		if isWorking {
			day.Start, day.End = trimTime(startTime.String), trimTime(endTime.String)
		}

		week.SetDay(time.Weekday(weekday), day)
		scheduleIDs[id] = time.Weekday(weekday)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	if !found {
		return nil, ErrScheduleNotFound
	}

	if err := r.loadBreaks(ctx, executor, scheduleIDs, &week); err != nil {
		return nil, err
	}

	return &week, nil
}

// loadBreaks загружает перерывы для строк расписания и раскладывает их по дням
func (r *Repository) loadBreaks(ctx context.Context, executor DBExecutor, scheduleIDs map[int64]time.Weekday, week *domain.WeeklySchedule) error {
	if len(scheduleIDs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(scheduleIDs))
	for id := range scheduleIDs {
		ids = append(ids, id)
	}

	query, args, err := psqlbuilder.Select(
		"schedule_id",
		"start_time",
		"end_time",
	).
		From("schedule_breaks").
		Where(squirrel.Eq{"schedule_id": ids}).
		OrderBy("schedule_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			scheduleID int64
			startTime  string
			endTime    string
		)

		if err := rows.Scan(&scheduleID, &startTime, &endTime); err != nil {
			return fmt.Errorf("%w: loadBreaks - scan break: %v", ErrScanRow, err)
		}

		weekday, ok := scheduleIDs[scheduleID]
		if !ok {
			continue
		}

		day := week.ForWeekday(weekday)
		day.Breaks = append(day.Breaks, domain.BreakInterval{
			Start: trimTime(startTime),
			End:   trimTime(endTime),
		})
		week.SetDay(weekday, day)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBreaks - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// ReplaceWeek полностью заменяет недельное расписание сотрудника
// Вызывается внутри транзакции: удаление старых строк и вставка новых
// должны быть атомарными
func (r *Repository) ReplaceWeek(ctx context.Context, staffID, businessID int64, week *domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build delete query: %v", ErrBuildQuery, err)
	}

	// schedule_breaks удаляются каскадом по внешнему ключу
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - delete old schedule: %v", ErrExecQuery, err)
	}

	for weekday := time.Weekday(0); weekday <= time.Saturday; weekday++ {
		day := week.ForWeekday(weekday)
		if err := r.insertDay(ctx, executor, staffID, businessID, weekday, day); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) insertDay(ctx context.Context, executor DBExecutor, staffID, businessID int64, weekday time.Weekday, day domain.DaySchedule) error {
	insertBuilder := psqlbuilder.Insert("staff_schedules").
		Columns("staff_id", "business_id", "weekday", "is_working", "start_time", "end_time")

	if day.IsWorking {
		insertBuilder = insertBuilder.Values(staffID, businessID, int(weekday), true, day.Start, day.End)
	} else {
		insertBuilder = insertBuilder.Values(staffID, businessID, int(weekday), false, nil, nil)
	}

	query, args, err := insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertDay - build insert query: %v", ErrBuildQuery, err)
	}

	var scheduleID int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&scheduleID); err != nil {
		return fmt.Errorf("%w: insertDay - execute insert: %v", ErrExecQuery, err)
	}

	if !day.IsWorking || len(day.Breaks) == 0 {
		return nil
	}

	breaksBuilder := psqlbuilder.Insert("schedule_breaks").
		Columns("schedule_id", "start_time", "end_time")
	for _, br := range day.Breaks {
		breaksBuilder = breaksBuilder.Values(scheduleID, br.Start, br.End)
	}

	breaksQuery, breaksArgs, err := breaksBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertDay - build breaks insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, breaksQuery, breaksArgs...); err != nil {
		return fmt.Errorf("%w: insertDay - execute breaks insert: %v", ErrExecQuery, err)
	}

	return nil
}

// trimTime обрезает секунды из значения колонки TIME ("09:00:00" -> "09:00")
func trimTime(s string) types.TimeString {
	if len(s) > 5 {
		s = s[:5]
	}
	return types.TimeString(s)
}
