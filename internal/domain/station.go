package domain

import "time"

// Station represents a car-service station
type Station struct {
	ID      int64
	Name    string
	Address string
	Phone   *string
	Email   *string
	// OperatingHours свободный текст для отображения клиенту.
	// Реальное расписание берется из ScheduleConfig (единое для всех станций),
	// это поле в планировании НЕ участвует
	OperatingHours *string
	IsActive       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
