package create_booking

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена или неактивна
	ErrStationNotFound = errors.New("create_booking: station not found or inactive")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found or inactive")

	// ErrServiceNotAvailableAtStation возвращается, когда услуга не оказывается
	// на выбранной станции (нет активной записи в прайсе станции)
	ErrServiceNotAvailableAtStation = errors.New("create_booking: service is not available at this station")

	// ErrPastSchedule возвращается, когда запрошенное время не в будущем
	ErrPastSchedule = errors.New("create_booking: scheduled date must be in the future")

	// ErrOutsideOperatingHours возвращается, когда время вне рабочих часов станции
	ErrOutsideOperatingHours = errors.New("create_booking: station is closed at this time")

	// ErrSlotNotAvailable возвращается, когда слот занят другим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: time slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
