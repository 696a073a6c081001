package catalog

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена или неактивна
	ErrStationNotFound = errors.New("station not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
