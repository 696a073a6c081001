package get_station

import (
	"context"

	"carservice/internal/service/catalog/models"
)

type CatalogService interface {
	GetStation(ctx context.Context, id int64) (*models.StationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
