package get_station_services

import (
	"context"

	"carservice/internal/service/catalog/models"
)

type CatalogService interface {
	GetStationServices(ctx context.Context, stationID int64) (*models.StationServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
