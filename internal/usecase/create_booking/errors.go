package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrStaffNotEligible возвращается, когда сотрудник не оказывает услугу
	ErrStaffNotEligible = errors.New("create_booking: staff does not provide this service")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrStaffNotWorking возвращается, когда сотрудник не работает в указанную дату
	ErrStaffNotWorking = errors.New("create_booking: staff is not working on this date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время слота некорректно
	// (не кратно шагу сетки или вне рабочего окна)
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается при попытке забронировать уже прошедшее время
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrBusy возвращается, когда бронирование не удалось из-за конкурентных
	// изменений и стоит повторить запрос
	ErrBusy = errors.New("create_booking: resource is busy, try again")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
