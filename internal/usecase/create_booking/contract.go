package create_booking

import (
	"context"
	"time"

	"carservice/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetActiveInWindow выбирает активные бронирования станции (любая услуга)
	// со временем начала в [from, to]; внутри транзакции строки блокируются
	GetActiveInWindow(ctx context.Context, stationID int64, from, to time.Time) ([]*domain.Booking, error)
	AppendStatusHistory(ctx context.Context, entry *domain.BookingStatusHistory) (*domain.BookingStatusHistory, error)
}

// CatalogRepository интерфейс репозитория каталога (станции, услуги, цены)
type CatalogRepository interface {
	GetStationByID(ctx context.Context, id int64) (*domain.Station, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetActivePrice(ctx context.Context, stationID, serviceID int64) (*domain.StationServicePrice, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
