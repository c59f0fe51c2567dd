package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avelar-dev/taskcast-be/internal/weatherapi"
)

// stubProvider counts calls and returns a canned observation or error.
type stubProvider struct {
	calls int
	obs   weatherapi.Observation
	err   error
}

func (p *stubProvider) Current(ctx context.Context, city string) (weatherapi.Observation, error) {
	p.calls++
	if p.err != nil {
		return weatherapi.Observation{}, p.err
	}
	return p.obs, nil
}

func insertReading(t *testing.T, svc *WeatherService, city string, temp float64, ts time.Time) {
	t.Helper()
	_, err := svc.db.Exec(
		"INSERT INTO weather(city, temperature, description, timestamp) VALUES(?, ?, 'Cloudy', ?)",
		city, temp, ts.UTC())
	if err != nil {
		t.Fatalf("insert reading: %v", err)
	}
}

func TestFreshReadingServedFromCache(t *testing.T) {
	provider := &stubProvider{obs: weatherapi.Observation{TemperatureC: 99, Description: "should not be used"}}
	svc := NewWeatherService(newWeatherDB(t), provider)

	now := time.Now()
	insertReading(t, svc, "Paris", 18.5, now.Add(-30*time.Minute))

	got, err := svc.Current(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0", provider.calls)
	}
	if got.Temperature != 18.5 {
		t.Errorf("temperature = %v, want 18.5", got.Temperature)
	}
}

func TestStaleReadingTriggersFetchAndPersist(t *testing.T) {
	provider := &stubProvider{obs: weatherapi.Observation{TemperatureC: 21.0, Description: "Sunny"}}
	svc := NewWeatherService(newWeatherDB(t), provider)

	insertReading(t, svc, "Paris", 12.0, time.Now().Add(-90*time.Minute))

	got, err := svc.Current(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if got.Temperature != 21.0 || got.Description != "Sunny" {
		t.Errorf("got %+v, want the provider observation", got)
	}
	if got.ID == 0 {
		t.Error("expected the new reading to be persisted with an id")
	}

	// A second lookup now hits the freshly stored row.
	again, err := svc.Current(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Current (second): %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times after second lookup, want 1", provider.calls)
	}
	if again.ID != got.ID {
		t.Errorf("second lookup returned row %d, want %d", again.ID, got.ID)
	}
}

func TestNewestFreshRowWins(t *testing.T) {
	provider := &stubProvider{}
	svc := NewWeatherService(newWeatherDB(t), provider)

	now := time.Now()
	insertReading(t, svc, "Paris", 10.0, now.Add(-50*time.Minute))
	insertReading(t, svc, "Paris", 11.0, now.Add(-10*time.Minute))
	insertReading(t, svc, "Paris", 9.0, now.Add(-40*time.Minute))

	got, err := svc.Current(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.Temperature != 11.0 {
		t.Errorf("temperature = %v, want the newest row's 11.0", got.Temperature)
	}
}

func TestUnknownCityPropagates(t *testing.T) {
	provider := &stubProvider{err: weatherapi.ErrCityNotFound}
	svc := NewWeatherService(newWeatherDB(t), provider)

	if _, err := svc.Current(context.Background(), "Atlantis"); !errors.Is(err, weatherapi.ErrCityNotFound) {
		t.Errorf("err = %v, want ErrCityNotFound", err)
	}
}

func TestProviderFailureKeptDistinct(t *testing.T) {
	provider := &stubProvider{err: weatherapi.ErrProviderUnavailable}
	svc := NewWeatherService(newWeatherDB(t), provider)

	_, err := svc.Current(context.Background(), "Paris")
	if !errors.Is(err, weatherapi.ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
	if errors.Is(err, weatherapi.ErrCityNotFound) {
		t.Error("provider failure must not look like an unknown city")
	}
}

func TestPruneOlderThan(t *testing.T) {
	svc := NewWeatherService(newWeatherDB(t), &stubProvider{})

	now := time.Now()
	insertReading(t, svc, "Paris", 10.0, now.Add(-48*time.Hour))
	insertReading(t, svc, "Lyon", 11.0, now.Add(-30*time.Hour))
	insertReading(t, svc, "Paris", 12.0, now.Add(-10*time.Minute))

	deleted, err := svc.PruneOlderThan(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	var remaining int
	if err := svc.db.QueryRow("SELECT COUNT(*) FROM weather").Scan(&remaining); err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining rows = %d, want 1", remaining)
	}
}
