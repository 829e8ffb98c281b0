// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wneessen/skycast/internal/config"
	"github.com/wneessen/skycast/internal/forecast"
	"github.com/wneessen/skycast/internal/geocode"
	"github.com/wneessen/skycast/internal/logger"
)

const testBody = `{"latitude":34.0522,"longitude":-118.2437,"hourly":{"time":[1705348800]}}`

type fakeProvider struct {
	body []byte
	err  error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(_ context.Context, _, _ float64) (*forecast.RawForecast, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) FetchRaw(_ context.Context, _, _ float64) ([]byte, error) {
	return f.body, f.err
}

type fakeGeocoder struct {
	results []geocode.SearchResult
	place   geocode.Place
	err     error
}

func (f *fakeGeocoder) Name() string { return "fake" }

func (f *fakeGeocoder) Search(_ context.Context, _ string) ([]geocode.SearchResult, error) {
	return f.results, f.err
}

func (f *fakeGeocoder) Reverse(_ context.Context, _, _ float64) (geocode.Place, error) {
	return f.place, f.err
}

func testServer(t *testing.T, provider *fakeProvider, geocoder *fakeGeocoder) *Server {
	t.Helper()
	conf, err := config.New()
	if err != nil {
		t.Fatalf("failed to load config: %s", err)
	}
	server, err := New(conf, logger.New(slog.LevelError), provider, geocoder)
	if err != nil {
		t.Fatalf("failed to create server: %s", err)
	}
	return server
}

func TestNew(t *testing.T) {
	t.Run("missing dependencies fail", func(t *testing.T) {
		conf, err := config.New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		log := logger.New(slog.LevelError)
		if _, err = New(nil, log, &fakeProvider{}, &fakeGeocoder{}); err == nil {
			t.Error("expected server creation without config to fail, but didn't")
		}
		if _, err = New(conf, nil, &fakeProvider{}, &fakeGeocoder{}); err == nil {
			t.Error("expected server creation without logger to fail, but didn't")
		}
		if _, err = New(conf, log, nil, &fakeGeocoder{}); err == nil {
			t.Error("expected server creation without provider to fail, but didn't")
		}
		if _, err = New(conf, log, &fakeProvider{}, nil); err == nil {
			t.Error("expected server creation without geocoder to fail, but didn't")
		}
	})
}

func TestServer_handleWeather(t *testing.T) {
	t.Run("upstream body is relayed verbatim", func(t *testing.T) {
		server := testServer(t, &fakeProvider{body: []byte(testBody)}, &fakeGeocoder{})

		req := httptest.NewRequest(http.MethodGet, "/api/weather?lat=34.0522&lon=-118.2437", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("failed to read response body: %s", err)
		}
		if string(body) != testBody {
			t.Error("expected the upstream body to be relayed unmodified")
		}
	})
	t.Run("missing coordinates fail", func(t *testing.T) {
		server := testServer(t, &fakeProvider{body: []byte(testBody)}, &fakeGeocoder{})

		req := httptest.NewRequest(http.MethodGet, "/api/weather?lat=34.0522", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", resp.StatusCode)
		}
	})
	t.Run("out-of-range coordinates fail", func(t *testing.T) {
		server := testServer(t, &fakeProvider{body: []byte(testBody)}, &fakeGeocoder{})

		req := httptest.NewRequest(http.MethodGet, "/api/weather?lat=91&lon=0", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", resp.StatusCode)
		}
	})
	t.Run("upstream failure returns bad gateway", func(t *testing.T) {
		server := testServer(t, &fakeProvider{err: errors.New("connection refused")}, &fakeGeocoder{})

		req := httptest.NewRequest(http.MethodGet, "/api/weather?lat=34.0522&lon=-118.2437", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusBadGateway {
			t.Errorf("expected status 502, got %d", resp.StatusCode)
		}
	})
}

func TestServer_handleSearch(t *testing.T) {
	t.Run("search results are returned", func(t *testing.T) {
		geocoder := &fakeGeocoder{results: []geocode.SearchResult{
			{Name: "Berlin", Country: "Deutschland", Latitude: 52.52, Longitude: 13.405},
		}}
		server := testServer(t, &fakeProvider{}, geocoder)

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=Berlin", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}
	})
	t.Run("missing query fails", func(t *testing.T) {
		server := testServer(t, &fakeProvider{}, &fakeGeocoder{})

		req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", resp.StatusCode)
		}
	})
	t.Run("unknown place returns not found", func(t *testing.T) {
		server := testServer(t, &fakeProvider{},
			&fakeGeocoder{err: geocode.ErrLocationNotFound})

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=nowhere", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", resp.StatusCode)
		}
	})
}

func TestServer_handleReverse(t *testing.T) {
	t.Run("place is returned", func(t *testing.T) {
		geocoder := &fakeGeocoder{place: geocode.Place{City: "Berlin", Latitude: 52.52, Longitude: 13.405}}
		server := testServer(t, &fakeProvider{}, geocoder)

		req := httptest.NewRequest(http.MethodGet, "/api/reverse?lat=52.52&lon=13.405", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}
	})
	t.Run("geocoder failure returns bad gateway", func(t *testing.T) {
		server := testServer(t, &fakeProvider{}, &fakeGeocoder{err: errors.New("timeout")})

		req := httptest.NewRequest(http.MethodGet, "/api/reverse?lat=52.52&lon=13.405", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusBadGateway {
			t.Errorf("expected status 502, got %d", resp.StatusCode)
		}
	})
}

func TestServer_healthz(t *testing.T) {
	t.Run("health endpoint responds", func(t *testing.T) {
		server := testServer(t, &fakeProvider{}, &fakeGeocoder{})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		resp, err := server.app.Test(req)
		if err != nil {
			t.Fatalf("failed to perform test request: %s", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}
	})
}
