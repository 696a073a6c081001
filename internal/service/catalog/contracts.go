package catalog

import (
	"context"

	"carservice/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListActiveStations(ctx context.Context) ([]*domain.Station, error)
	GetStationByID(ctx context.Context, id int64) (*domain.Station, error)
	ListActiveServices(ctx context.Context) ([]*domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListStationServices(ctx context.Context, stationID int64) ([]*domain.StationService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
