// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"testing"
	"time"
)

type countingGeocoder struct {
	reverseCalls int
	searchCalls  int
	city         string
}

func (c *countingGeocoder) Name() string { return "counting" }

func (c *countingGeocoder) Search(_ context.Context, _ string) ([]SearchResult, error) {
	c.searchCalls++
	return []SearchResult{{Name: "Testville"}}, nil
}

func (c *countingGeocoder) Reverse(_ context.Context, lat, lon float64) (Place, error) {
	c.reverseCalls++
	return Place{City: c.city, Latitude: lat, Longitude: lon}, nil
}

func TestCachedGeocoder_Reverse(t *testing.T) {
	t.Run("nearby coordinates hit the cache", func(t *testing.T) {
		coder := &countingGeocoder{city: "Los Angeles"}
		cached := NewCachedGeocoder(coder, time.Hour, time.Minute)

		for range 3 {
			place, err := cached.Reverse(context.Background(), 34.0522, -118.2437)
			if err != nil {
				t.Fatalf("failed to reverse geocode: %s", err)
			}
			if place.City != "Los Angeles" {
				t.Errorf("expected city %q, got %q", "Los Angeles", place.City)
			}
		}
		// 34.0522 and 34.0539 quantize to the same 0.01 degree cell
		if _, err := cached.Reverse(context.Background(), 34.0539, -118.2441); err != nil {
			t.Fatalf("failed to reverse geocode: %s", err)
		}
		if coder.reverseCalls != 1 {
			t.Errorf("expected a single upstream call, got %d", coder.reverseCalls)
		}
	})
	t.Run("distant coordinates miss the cache", func(t *testing.T) {
		coder := &countingGeocoder{city: "Somewhere"}
		cached := NewCachedGeocoder(coder, time.Hour, time.Minute)

		if _, err := cached.Reverse(context.Background(), 34.05, -118.24); err != nil {
			t.Fatalf("failed to reverse geocode: %s", err)
		}
		if _, err := cached.Reverse(context.Background(), 52.52, 13.39); err != nil {
			t.Fatalf("failed to reverse geocode: %s", err)
		}
		if coder.reverseCalls != 2 {
			t.Errorf("expected two upstream calls, got %d", coder.reverseCalls)
		}
	})
	t.Run("expired entries refresh", func(t *testing.T) {
		coder := &countingGeocoder{city: UnknownLocation}
		cached := NewCachedGeocoder(coder, time.Hour, -time.Second)

		if _, err := cached.Reverse(context.Background(), 1, 2); err != nil {
			t.Fatalf("failed to reverse geocode: %s", err)
		}
		if _, err := cached.Reverse(context.Background(), 1, 2); err != nil {
			t.Fatalf("failed to reverse geocode: %s", err)
		}
		if coder.reverseCalls != 2 {
			t.Errorf("expected the miss TTL to expire the entry, got %d upstream calls", coder.reverseCalls)
		}
	})
}

func TestCachedGeocoder_Search(t *testing.T) {
	t.Run("search always passes through", func(t *testing.T) {
		coder := &countingGeocoder{}
		cached := NewCachedGeocoder(coder, time.Hour, time.Minute)
		for range 2 {
			if _, err := cached.Search(context.Background(), "test"); err != nil {
				t.Fatalf("failed to search: %s", err)
			}
		}
		if coder.searchCalls != 2 {
			t.Errorf("expected two upstream calls, got %d", coder.searchCalls)
		}
	})
}
