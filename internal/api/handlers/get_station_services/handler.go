package get_station_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"carservice/internal/api/handlers"
	"carservice/internal/service/catalog"
)

const (
	msgInvalidStationID = "некорректный ID станции"
	msgStationNotFound  = "станция не найдена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем stationId из URL
	vars := mux.Vars(r)
	stationIDStr := vars["stationId"]

	stationID, err := strconv.ParseInt(stationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /stations/{id}/services - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	result, err := h.service.GetStationServices(r.Context(), stationID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrStationNotFound):
			h.logger.Warn("GET /stations/{id}/services - Station not found: station_id=%d", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		default:
			h.logger.Error("GET /stations/{id}/services - Failed to get services: station_id=%d, error=%v",
				stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations/{id}/services - Services retrieved successfully: station_id=%d, count=%d",
		stationID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
