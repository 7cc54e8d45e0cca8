package get_available_slots

import (
	"time"

	"github.com/salonmarket/booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	BusinessID int64     // ID бизнеса
	StaffID    int64     // ID сотрудника
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	BusinessID      int64     // ID бизнеса
	StaffID         int64     // ID сотрудника
	ServiceID       int64     // ID услуги
	DurationMinutes int       // Длительность услуги в минутах
	Slots           []Slot    // Список доступных слотов
}

// Slot модель доступного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
}
