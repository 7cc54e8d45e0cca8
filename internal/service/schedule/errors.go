package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание сотрудника не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrTimeOffNotFound возвращается, когда запись time-off не найдена
	ErrTimeOffNotFound = errors.New("time off entry not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
