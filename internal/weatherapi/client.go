// Package weatherapi talks to the weatherapi.com current-conditions
// endpoint.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrCityNotFound means the provider does not know the requested city.
var ErrCityNotFound = errors.New("city not found")

// ErrProviderUnavailable means the provider could not be reached or
// answered with an unexpected failure. Kept distinct from
// ErrCityNotFound so callers can tell a bad city from a bad day.
var ErrProviderUnavailable = errors.New("weather provider unavailable")

// Observation is a normalized current-conditions reading.
type Observation struct {
	TemperatureC float64
	Description  string
}

// Provider abstracts the external weather data source.
type Provider interface {
	Current(ctx context.Context, city string) (Observation, error)
}

// Client is the weatherapi.com implementation of Provider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a provider client. The HTTP client carries a
// timeout so a hanging provider cannot pin a request worker forever.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type currentResponse struct {
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Current fetches the current conditions for a city.
func (c *Client) Current(ctx context.Context, city string) (Observation, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", city)
	params.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/current.json?"+params.Encode(), nil)
	if err != nil {
		return Observation{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Observation{}, fmt.Errorf("%w: decoding response: %v", ErrProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		// 1006 is weatherapi.com's "no matching location found"
		if resp.StatusCode == http.StatusBadRequest && body.Error.Code == 1006 {
			return Observation{}, ErrCityNotFound
		}
		return Observation{}, fmt.Errorf("%w: status %d (%s)", ErrProviderUnavailable, resp.StatusCode, body.Error.Message)
	}

	return Observation{
		TemperatureC: body.Current.TempC,
		Description:  body.Current.Condition.Text,
	}, nil
}
