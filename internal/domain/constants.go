package domain

// Slot generation constants
const (
	// SlotStepMinutes фиксированный шаг генерации слотов
	// Совпадает с минимальной единицей длительности услуги и ограничивает
	// рост количества кандидатов на день
	SlotStepMinutes = 15
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxTimeOffReasonLength      = 500
	MaxCustomerNameLength       = 200
)

// Waitlist constants
const (
	// MaxWaitlistNotifications максимум уведомлений на одну отмену
	// Ограничивает fan-out, чтобы отмена не превращалась в шторм рассылки
	MaxWaitlistNotifications = 3

	MorningStartHour   = 8
	AfternoonStartHour = 12
	EveningStartHour   = 17
	EveningEndHour     = 22
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слот
// Используется для фильтрации при подсчете доступности
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// BlockingStatuses список статусов, занимающих слот
// Инвариант: для одного сотрудника интервалы бронирований в этих статусах
// никогда не пересекаются
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
