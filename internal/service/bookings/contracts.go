package bookings

import (
	"context"

	"carservice/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserWithFilter(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, int64, error)
	// UpdateStatus переводит бронирование из from в to, возвращает
	// ошибку конфликта, если статус изменился конкурентно
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	AppendStatusHistory(ctx context.Context, entry *domain.BookingStatusHistory) (*domain.BookingStatusHistory, error)
	GetStatusHistory(ctx context.Context, bookingID int64) ([]*domain.BookingStatusHistory, error)
}

// TransactionManager интерфейс для управления транзакциями
// Смена статуса и запись истории выполняются в одной транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
