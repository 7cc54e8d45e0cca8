package get_combined_availability

import (
	"time"

	"github.com/salonmarket/booking-service/pkg/types"
)

// Request модель запроса на получение сводной доступности услуги
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со сводной доступностью по всем сотрудникам.
// Доступность каждого сотрудника приводится отдельно
type Response struct {
	Date            time.Time    // Дата, на которую запрашивались слоты
	BusinessID      int64        // ID бизнеса
	ServiceID       int64        // ID услуги
	DurationMinutes int          // Длительность услуги в минутах
	Staff           []StaffSlots // Сотрудники со слотами, по возрастанию ID
}

// StaffSlots доступные времена начала одного сотрудника
type StaffSlots struct {
	StaffID int64              // ID сотрудника
	Slots   []types.TimeString // Времена начала по возрастанию (например, "10:00")
}
