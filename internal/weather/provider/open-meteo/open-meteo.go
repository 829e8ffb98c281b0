// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package open_meteo implements the weather.Provider interface against the
// Open-Meteo forecast API.
package open_meteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wneessen/skycast/internal/forecast"
	"github.com/wneessen/skycast/internal/http"
	"github.com/wneessen/skycast/internal/logger"
)

const (
	name        = "open-meteo"
	apiEndpoint = "https://api.open-meteo.com/v1/forecast"
	apiTimeout  = time.Second * 10
)

// hourlyFields and dailyFields are the exact field sets the display timeline
// is built from. Temperatures are always requested in Celsius; unit
// conversion happens at render time only.
var (
	hourlyFields = []string{
		"temperature_2m", "precipitation_probability", "weathercode", "apparent_temperature",
		"windspeed_10m", "cloudcover", "uv_index", "relative_humidity_2m", "pressure_msl",
	}
	dailyFields = []string{
		"weathercode", "temperature_2m_max", "temperature_2m_min",
		"precipitation_probability_max", "sunrise", "sunset",
	}
)

type OpenMeteo struct {
	endpoint string
	log      *logger.Logger
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// Option overrides defaults of an OpenMeteo instance.
type Option func(*OpenMeteo)

// WithEndpoint points the client at an alternative API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *OpenMeteo) { o.endpoint = endpoint }
}

func New(client *http.Client, log *logger.Logger, opts ...Option) (*OpenMeteo, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	o := &OpenMeteo{
		endpoint: apiEndpoint,
		http:     client,
		log:      log,
		// The breaker keeps a failing upstream from being hammered. It never
		// re-issues a request, every fetch remains a single attempt.
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// Fetch retrieves and parses the forecast payload for the given coordinate.
func (o *OpenMeteo) Fetch(ctx context.Context, lat, lon float64) (*forecast.RawForecast, error) {
	raw := new(forecast.RawForecast)
	_, err := o.breaker.Execute(func() (any, error) {
		code, err := o.http.GetWithTimeout(ctx, o.endpoint, raw, o.query(lat, lon), nil, apiTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve forecast data from Open-Meteo API: %w", err)
		}
		if code != 200 {
			return nil, fmt.Errorf("Open-Meteo API returned non-positive response code: %d", code)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// FetchRaw retrieves the forecast payload for the given coordinate and
// returns the upstream JSON body unmodified.
func (o *OpenMeteo) FetchRaw(ctx context.Context, lat, lon float64) ([]byte, error) {
	body, err := o.breaker.Execute(func() (any, error) {
		body, code, err := o.http.GetRaw(ctx, o.endpoint, o.query(lat, lon), nil, apiTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve forecast data from Open-Meteo API: %w", err)
		}
		if code != 200 {
			return nil, fmt.Errorf("Open-Meteo API returned non-positive response code: %d", code)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (o *OpenMeteo) query(lat, lon float64) url.Values {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", lat))
	query.Set("longitude", fmt.Sprintf("%f", lon))
	query.Set("hourly", strings.Join(hourlyFields, ","))
	query.Set("daily", strings.Join(dailyFields, ","))
	query.Set("timezone", "auto")
	query.Set("timeformat", "unixtime")
	return query
}
