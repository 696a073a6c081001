package domain

import "time"

// TimeSlot is one fixed-width entry of the day's slot grid, annotated with
// availability for a particular (station, service) pair
type TimeSlot struct {
	StartTime   time.Time
	EndTime     time.Time // StartTime + длительность услуги, не шаг сетки
	IsAvailable bool
	DisplayTime string // "HH:MM" для отображения клиенту
}
