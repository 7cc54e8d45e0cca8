package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")
	// ErrInvalidDay возвращается при некорректном описании дня
	ErrInvalidDay = errors.New("invalid day schedule")
)

// Request модели

// BreakDTO перерыв в течение рабочего дня
type BreakDTO struct {
	Start string `json:"start"` // "13:00"
	End   string `json:"end"`   // "14:00"
}

// DayDTO расписание одного дня недели
type DayDTO struct {
	IsWorking bool       `json:"isWorking"`
	Start     string     `json:"start,omitempty"` // "09:00", обязательно для рабочего дня
	End       string     `json:"end,omitempty"`   // "18:00", обязательно для рабочего дня
	Breaks    []BreakDTO `json:"breaks,omitempty"`
}

// UpdateWeekRequest запрос на замену недельного расписания сотрудника
type UpdateWeekRequest struct {
	UserID     int64  `json:"userId"`
	BusinessID int64  `json:"businessId"`
	Monday     DayDTO `json:"monday"`
	Tuesday    DayDTO `json:"tuesday"`
	Wednesday  DayDTO `json:"wednesday"`
	Thursday   DayDTO `json:"thursday"`
	Friday     DayDTO `json:"friday"`
	Saturday   DayDTO `json:"saturday"`
	Sunday     DayDTO `json:"sunday"`
}

// CreateTimeOffRequest запрос на создание записи time-off
// StaffID = nil означает перерыв в работе всего бизнеса
type CreateTimeOffRequest struct {
	UserID     int64     `json:"userId"`
	BusinessID int64     `json:"businessId"`
	StaffID    *int64    `json:"staffId,omitempty"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Reason     string    `json:"reason"`
}

// Response модели

// WeekResponse недельное расписание сотрудника
type WeekResponse struct {
	StaffID   int64  `json:"staffId"`
	Monday    DayDTO `json:"monday"`
	Tuesday   DayDTO `json:"tuesday"`
	Wednesday DayDTO `json:"wednesday"`
	Thursday  DayDTO `json:"thursday"`
	Friday    DayDTO `json:"friday"`
	Saturday  DayDTO `json:"saturday"`
	Sunday    DayDTO `json:"sunday"`
}

// TimeOffResponse ответ с данными записи time-off
type TimeOffResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	StaffID    *int64    `json:"staffId,omitempty"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Методы конвертации

// ToDomainWeek конвертирует request в domain модель с валидацией
func (r *UpdateWeekRequest) ToDomainWeek() (*domain.WeeklySchedule, error) {
	week := &domain.WeeklySchedule{}

	days := []struct {
		weekday time.Weekday
		dto     DayDTO
	}{
		{time.Monday, r.Monday},
		{time.Tuesday, r.Tuesday},
		{time.Wednesday, r.Wednesday},
		{time.Thursday, r.Thursday},
		{time.Friday, r.Friday},
		{time.Saturday, r.Saturday},
		{time.Sunday, r.Sunday},
	}

	for _, d := range days {
		day, err := d.dto.toDomainDay()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", weekdayName(d.weekday), err)
		}
		week.SetDay(d.weekday, day)
	}

	return week, nil
}

// toDomainDay конвертирует DayDTO в domain.DaySchedule с валидацией
func (d DayDTO) toDomainDay() (domain.DaySchedule, error) {
	if !d.IsWorking {
		return domain.DaySchedule{IsWorking: false}, nil
	}

	start, err := types.NewTimeStringFromString(d.Start)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: start %q", ErrInvalidTime, d.Start)
	}
	end, err := types.NewTimeStringFromString(d.End)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: end %q", ErrInvalidTime, d.End)
	}
	if !start.IsBefore(end) {
		return domain.DaySchedule{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidDay, start, end)
	}

	breaks := make([]domain.BreakInterval, 0, len(d.Breaks))
	for _, b := range d.Breaks {
		bStart, err := types.NewTimeStringFromString(b.Start)
		if err != nil {
			return domain.DaySchedule{}, fmt.Errorf("%w: break start %q", ErrInvalidTime, b.Start)
		}
		bEnd, err := types.NewTimeStringFromString(b.End)
		if err != nil {
			return domain.DaySchedule{}, fmt.Errorf("%w: break end %q", ErrInvalidTime, b.End)
		}
		if !bStart.IsBefore(bEnd) {
			return domain.DaySchedule{}, fmt.Errorf("%w: break start %s must be before end %s", ErrInvalidDay, bStart, bEnd)
		}
		if bStart.IsBefore(start) || bEnd.IsAfter(end) {
			return domain.DaySchedule{}, fmt.Errorf("%w: break %s-%s is outside the working window %s-%s",
				ErrInvalidDay, bStart, bEnd, start, end)
		}
		breaks = append(breaks, domain.BreakInterval{Start: bStart, End: bEnd})
	}

	// Перерывы не должны пересекаться между собой
	for i := 0; i < len(breaks); i++ {
		for j := i + 1; j < len(breaks); j++ {
			if breaks[i].Start.IsBefore(breaks[j].End) && breaks[j].Start.IsBefore(breaks[i].End) {
				return domain.DaySchedule{}, fmt.Errorf("%w: breaks %s-%s and %s-%s overlap",
					ErrInvalidDay, breaks[i].Start, breaks[i].End, breaks[j].Start, breaks[j].End)
			}
		}
	}

	return domain.DaySchedule{
		IsWorking: true,
		Start:     start,
		End:       end,
		Breaks:    breaks,
	}, nil
}

// FromDomainWeek конвертирует domain модель в DTO
func FromDomainWeek(staffID int64, week *domain.WeeklySchedule) *WeekResponse {
	if week == nil {
		return nil
	}

	return &WeekResponse{
		StaffID:   staffID,
		Monday:    fromDomainDay(week.Monday),
		Tuesday:   fromDomainDay(week.Tuesday),
		Wednesday: fromDomainDay(week.Wednesday),
		Thursday:  fromDomainDay(week.Thursday),
		Friday:    fromDomainDay(week.Friday),
		Saturday:  fromDomainDay(week.Saturday),
		Sunday:    fromDomainDay(week.Sunday),
	}
}

func fromDomainDay(day domain.DaySchedule) DayDTO {
	dto := DayDTO{IsWorking: day.IsWorking}
	if !day.IsWorking {
		return dto
	}

	dto.Start = day.Start.String()
	dto.End = day.End.String()
	dto.Breaks = make([]BreakDTO, 0, len(day.Breaks))
	for _, b := range day.Breaks {
		dto.Breaks = append(dto.Breaks, BreakDTO{Start: b.Start.String(), End: b.End.String()})
	}

	return dto
}

// ToDomainTimeOff конвертирует request в domain модель
func (r *CreateTimeOffRequest) ToDomainTimeOff() *domain.TimeOffEntry {
	return &domain.TimeOffEntry{
		BusinessID: r.BusinessID,
		StaffID:    r.StaffID,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		Reason:     r.Reason,
	}
}

// FromDomainTimeOff конвертирует domain модель в DTO
func FromDomainTimeOff(e *domain.TimeOffEntry) *TimeOffResponse {
	if e == nil {
		return nil
	}

	return &TimeOffResponse{
		ID:         e.ID,
		BusinessID: e.BusinessID,
		StaffID:    e.StaffID,
		StartsAt:   e.StartsAt,
		EndsAt:     e.EndsAt,
		Reason:     e.Reason,
		CreatedAt:  e.CreatedAt,
	}
}

func weekdayName(w time.Weekday) string {
	switch w {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
