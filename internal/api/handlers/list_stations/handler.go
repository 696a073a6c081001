package list_stations

import (
	"net/http"

	"carservice/internal/api/handlers"
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

// Handle GET /api/v1/stations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListStations(r.Context())
	if err != nil {
		h.logger.Error("GET /stations - Failed to list stations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stations - Stations retrieved successfully: count=%d", len(result.Stations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
