package models

import "time"

// WeatherReading is one cached observation for a city.
type WeatherReading struct {
	ID          int64     `json:"id"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
