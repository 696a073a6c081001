package get_station

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
	msgNotFound         = "станция не найдена"
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

// Handle GET /api/v1/stations/{stationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем stationId из URL
	vars := mux.Vars(r)
	stationIDStr := vars["stationId"]

	stationID, err := strconv.ParseInt(stationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /stations/{id} - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	station, err := h.service.GetStation(r.Context(), stationID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrStationNotFound):
			h.logger.Warn("GET /stations/{id} - Station not found: station_id=%d", stationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /stations/{id} - Failed to get station: station_id=%d, error=%v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations/{id} - Station retrieved successfully: station_id=%d", stationID)
	handlers.RespondJSON(w, http.StatusOK, station)
}
