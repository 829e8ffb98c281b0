// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package open_meteo

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpc "github.com/wneessen/skycast/internal/http"
	"github.com/wneessen/skycast/internal/logger"
)

const testPayload = `{
	"latitude": 34.0522, "longitude": -118.2437, "timezone": "America/Los_Angeles",
	"hourly": {
		"time": [1705348800, 1705352400],
		"temperature_2m": [12.5, 13.1],
		"precipitation_probability": [5, 10],
		"weathercode": [1, 2],
		"apparent_temperature": [11.9, 12.6],
		"windspeed_10m": [8.4, 9.1],
		"cloudcover": [20, 45],
		"uv_index": [3.5, 4.0],
		"relative_humidity_2m": [60, 58],
		"pressure_msl": [1016.2, 1015.8]
	},
	"daily": {
		"time": [1705305600],
		"weathercode": [2],
		"temperature_2m_max": [16.4],
		"temperature_2m_min": [8.9],
		"precipitation_probability_max": [10],
		"sunrise": [1705331160],
		"sunset": [1705367340]
	}
}`

func testProvider(t *testing.T, handler http.HandlerFunc) *OpenMeteo {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	provider, err := New(httpc.New(logger.New(slog.LevelError)), logger.New(slog.LevelError),
		WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	return provider
}

func TestNew(t *testing.T) {
	t.Run("missing http client fails", func(t *testing.T) {
		if _, err := New(nil, logger.New(slog.LevelError)); err == nil {
			t.Error("expected provider creation to fail, but didn't")
		}
	})
	t.Run("missing logger fails", func(t *testing.T) {
		if _, err := New(httpc.New(logger.New(slog.LevelError)), nil); err == nil {
			t.Error("expected provider creation to fail, but didn't")
		}
	})
}

func TestOpenMeteo_Fetch(t *testing.T) {
	t.Run("requested fields and parsed payload match", func(t *testing.T) {
		provider := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			if query.Get("timezone") != "auto" {
				t.Errorf("expected timezone=auto, got %q", query.Get("timezone"))
			}
			if query.Get("timeformat") != "unixtime" {
				t.Errorf("expected timeformat=unixtime, got %q", query.Get("timeformat"))
			}
			if !strings.Contains(query.Get("hourly"), "uv_index") {
				t.Errorf("expected hourly fields to contain uv_index, got %q", query.Get("hourly"))
			}
			if !strings.Contains(query.Get("daily"), "sunrise") {
				t.Errorf("expected daily fields to contain sunrise, got %q", query.Get("daily"))
			}
			_, _ = w.Write([]byte(testPayload))
		})

		raw, err := provider.Fetch(context.Background(), 34.0522, -118.2437)
		if err != nil {
			t.Fatalf("failed to fetch forecast: %s", err)
		}
		if raw.Timezone != "America/Los_Angeles" {
			t.Errorf("expected timezone America/Los_Angeles, got %q", raw.Timezone)
		}
		if len(raw.Hourly.Time) != 2 {
			t.Fatalf("expected 2 hourly entries, got %d", len(raw.Hourly.Time))
		}
		if raw.Hourly.Temperature[1] != 13.1 {
			t.Errorf("expected temperature 13.1, got %f", raw.Hourly.Temperature[1])
		}
		if raw.Daily.Sunset[0] != 1705367340 {
			t.Errorf("expected sunset 1705367340, got %f", raw.Daily.Sunset[0])
		}
	})
	t.Run("non-200 response fails", func(t *testing.T) {
		provider := testProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{}`))
		})
		if _, err := provider.Fetch(context.Background(), 1, 2); err == nil {
			t.Error("expected fetch to fail, but didn't")
		}
	})
}

func TestOpenMeteo_FetchRaw(t *testing.T) {
	t.Run("body is returned verbatim", func(t *testing.T) {
		provider := testProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(testPayload))
		})
		body, err := provider.FetchRaw(context.Background(), 34.0522, -118.2437)
		if err != nil {
			t.Fatalf("failed to fetch raw forecast: %s", err)
		}
		if string(body) != testPayload {
			t.Error("expected the upstream body to be returned unmodified")
		}
	})
	t.Run("repeated failures open the circuit breaker", func(t *testing.T) {
		var requests int
		provider := testProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			requests++
			w.WriteHeader(http.StatusBadGateway)
		})
		for range 10 {
			_, err := provider.FetchRaw(context.Background(), 1, 2)
			if err == nil {
				t.Fatal("expected fetch to fail, but didn't")
			}
		}
		if requests >= 10 {
			t.Errorf("expected the breaker to stop upstream requests, upstream saw %d", requests)
		}
	})
}
