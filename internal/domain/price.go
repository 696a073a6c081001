package domain

import "time"

// StationServicePrice is the (station, service) join: it defines whether a
// service is offered at a station and at what price. The price is copied
// into Booking.TotalPrice at creation time.
type StationServicePrice struct {
	ID        int64
	StationID int64
	ServiceID int64
	Price     float64
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StationService услуга вместе с ценой на конкретной станции
// Используется в каталоге для витрины "услуги станции"
type StationService struct {
	Service Service
	Price   float64
}
