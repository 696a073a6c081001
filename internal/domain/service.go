package domain

import "time"

// Service represents a car-service offering (wash, oil change, ...)
type Service struct {
	ID          int64
	Name        string
	Description *string
	BasePrice   float64
	// EstimatedDurationMinutes is the only scheduling-relevant attribute:
	// it defines the interval a booking of this service occupies
	EstimatedDurationMinutes int
	IsActive                 bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
