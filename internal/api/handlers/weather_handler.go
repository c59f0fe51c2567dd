package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/avelar-dev/taskcast-be/internal/api/httpx"
	"github.com/avelar-dev/taskcast-be/internal/services"
	"github.com/avelar-dev/taskcast-be/internal/weatherapi"
)

// WeatherHandler handles weather lookups.
type WeatherHandler struct {
	service services.WeatherServiceProvider
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(service services.WeatherServiceProvider) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// GetCity answers with a cached or freshly fetched reading. An
// unknown city is 404; a provider outage is 502.
func (h *WeatherHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	if city == "" {
		httpx.WriteError(w, http.StatusBadRequest, "city is required")
		return
	}

	reading, err := h.service.Current(r.Context(), city)
	if err != nil {
		switch {
		case errors.Is(err, weatherapi.ErrCityNotFound):
			httpx.WriteError(w, http.StatusNotFound, "city not found")
		case errors.Is(err, weatherapi.ErrProviderUnavailable):
			httpx.WriteError(w, http.StatusBadGateway, "weather provider unavailable")
		default:
			log.Error().Err(err).Str("city", city).Msg("Failed to resolve weather")
			httpx.WriteError(w, http.StatusInternalServerError, "failed to resolve weather")
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reading)
}
