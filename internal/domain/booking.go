package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Booking represents a scheduled service at a station
type Booking struct {
	ID            int64
	UserID        int64
	ServiceID     int64
	StationID     int64
	ScheduledDate time.Time
	// DurationMinutes денормализуется из услуги при создании,
	// чтобы интервал бронирования был самодостаточным
	DurationMinutes     int
	TotalPrice          float64
	Status              BookingStatus
	VehicleDetails      VehicleDetails
	SpecialInstructions *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IntervalEnd returns the end of the occupied interval [ScheduledDate, IntervalEnd)
func (b *Booking) IntervalEnd() time.Time {
	return b.ScheduledDate.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive returns true if the booking occupies its time slot
// Only active bookings participate in overlap checks
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// IsTerminal returns true if no further status transitions are permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanTransitionTo reports whether the status state machine permits the move
// to next. The forward chain is strict (pending -> confirmed -> in_progress
// -> completed); cancelled is reachable from any non-terminal state.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.IsTerminal() {
		return false
	}

	if next == StatusCancelled {
		return true
	}

	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	default:
		return false
	}
}

// UserBookingsFilter фильтр для выборки бронирований пользователя
type UserBookingsFilter struct {
	UserID int64          // Обязательный параметр
	Status *BookingStatus // Фильтр по статусу (опционально)
	Limit  int            // Размер страницы
	Offset int            // Смещение
}
