package create_booking

import (
	"time"

	"carservice/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID              int64                 // ID пользователя (из заголовка аутентификации)
	ServiceID           int64                 // ID услуги
	StationID           int64                 // ID станции
	ScheduledDate       time.Time             // Запрошенное время начала обслуживания
	VehicleDetails      domain.VehicleDetails // Данные автомобиля
	SpecialInstructions *string               // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                  int64
	UserID              int64
	ServiceID           int64
	StationID           int64
	ScheduledDate       time.Time
	DurationMinutes     int
	TotalPrice          float64
	Status              string
	VehicleDetails      domain.VehicleDetails
	SpecialInstructions *string

	// Денормализованные данные для ответа клиенту
	ServiceName string
	StationName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
