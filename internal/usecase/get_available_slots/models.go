package get_available_slots

import (
	"time"

	"carservice/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StationID int64     // ID станции
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (время игнорируется)
}

// Response модель ответа со списком слотов на день
type Response struct {
	Date      time.Time         // Дата, на которую запрашивались слоты
	StationID int64             // ID станции
	ServiceID int64             // ID услуги
	Slots     []domain.TimeSlot // Полная сетка слотов с признаком доступности
}
