package get_available_slots

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена или неактивна
	ErrStationNotFound = errors.New("get_available_slots: station not found or inactive")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("get_available_slots: service not found or inactive")

	// ErrServiceNotAvailableAtStation возвращается, когда услуга не оказывается
	// на выбранной станции
	ErrServiceNotAvailableAtStation = errors.New("get_available_slots: service is not available at this station")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
