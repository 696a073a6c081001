package list_stations

import (
	"context"

	"carservice/internal/service/catalog/models"
)

type CatalogService interface {
	ListStations(ctx context.Context) (*models.StationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
