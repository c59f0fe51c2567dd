package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avelar-dev/taskcast-be/internal/metrics"
	"github.com/avelar-dev/taskcast-be/internal/models"
	"github.com/avelar-dev/taskcast-be/internal/weatherapi"
)

// freshnessWindow is how long a stored reading keeps answering
// lookups before the provider is consulted again.
const freshnessWindow = time.Hour

// WeatherServiceProvider defines the interface for weather services.
type WeatherServiceProvider interface {
	Current(ctx context.Context, city string) (models.WeatherReading, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}

// WeatherService serves cached readings while they are fresh and
// falls back to the external provider otherwise. Concurrent lookups
// for the same city may each call the provider and insert their own
// row; rows are append-only and the newest one wins on read.
type WeatherService struct {
	db       *sql.DB
	provider weatherapi.Provider
	now      func() time.Time
}

// NewWeatherService creates a new WeatherService.
func NewWeatherService(db *sql.DB, provider weatherapi.Provider) *WeatherService {
	return &WeatherService{db: db, provider: provider, now: time.Now}
}

// Current resolves the weather for a city, from cache when a reading
// newer than the freshness window exists, from the provider otherwise.
func (s *WeatherService) Current(ctx context.Context, city string) (models.WeatherReading, error) {
	if reading, ok, err := s.freshReading(city); err != nil {
		return models.WeatherReading{}, err
	} else if ok {
		metrics.CacheHits.Inc()
		return reading, nil
	}
	metrics.CacheMisses.Inc()

	obs, err := s.provider.Current(ctx, city)
	if err != nil {
		switch {
		case errors.Is(err, weatherapi.ErrCityNotFound):
			metrics.ProviderRequests.WithLabelValues("city_not_found").Inc()
		default:
			metrics.ProviderRequests.WithLabelValues("error").Inc()
			log.Error().Err(err).Str("city", city).Msg("Weather provider call failed")
		}
		return models.WeatherReading{}, err
	}
	metrics.ProviderRequests.WithLabelValues("ok").Inc()

	return s.save(city, obs)
}

// PruneOlderThan deletes readings stored before the cutoff and
// reports how many rows went away.
func (s *WeatherService) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM weather WHERE timestamp < ?", cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// freshReading returns the newest stored reading for the city within
// the freshness window. Newest-first ordering decides the winner when
// duplicate rows exist.
func (s *WeatherService) freshReading(city string) (models.WeatherReading, bool, error) {
	since := s.now().Add(-freshnessWindow).UTC()
	row := s.db.QueryRow(
		"SELECT id, city, temperature, description, timestamp FROM weather WHERE city = ? AND timestamp > ? ORDER BY timestamp DESC LIMIT 1",
		city, since)

	var r models.WeatherReading
	err := row.Scan(&r.ID, &r.City, &r.Temperature, &r.Description, &r.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.WeatherReading{}, false, nil
		}
		return models.WeatherReading{}, false, err
	}
	return r, true, nil
}

func (s *WeatherService) save(city string, obs weatherapi.Observation) (models.WeatherReading, error) {
	reading := models.WeatherReading{
		City:        city,
		Temperature: obs.TemperatureC,
		Description: obs.Description,
		Timestamp:   s.now().UTC(),
	}

	res, err := s.db.Exec(
		"INSERT INTO weather(city, temperature, description, timestamp) VALUES(?, ?, ?, ?)",
		reading.City, reading.Temperature, reading.Description, reading.Timestamp)
	if err != nil {
		return models.WeatherReading{}, err
	}

	reading.ID, err = res.LastInsertId()
	if err != nil {
		return models.WeatherReading{}, err
	}
	return reading, nil
}
