// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package locate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/wneessen/skycast/internal/logger"
)

func TestNewGPSD(t *testing.T) {
	t.Run("new gpsd locator succeeds", func(t *testing.T) {
		locator := NewGPSD("localhost:2947", logger.New(slog.LevelError))
		if locator == nil {
			t.Fatal("expected locator to be non-nil")
		}
		if !strings.EqualFold(locator.Name(), name) {
			t.Errorf("expected locator name to be %s, got %s", name, locator.Name())
		}
	})
}

func TestGPSD_Locate(t *testing.T) {
	t.Run("fix is passed through", func(t *testing.T) {
		locator := NewGPSD("localhost:2947", logger.New(slog.LevelError))
		locator.locateFn = func(_ context.Context) (Coordinate, error) {
			return Coordinate{Latitude: 40.7185, Longitude: -74.0025, Accuracy: 12}, nil
		}

		coord, err := locator.Locate(context.Background())
		if err != nil {
			t.Fatalf("failed to locate: %s", err)
		}
		if coord.Latitude != 40.7185 {
			t.Errorf("expected latitude to be %f, got %f", 40.7185, coord.Latitude)
		}
		if coord.Longitude != -74.0025 {
			t.Errorf("expected longitude to be %f, got %f", -74.0025, coord.Longitude)
		}
	})
	t.Run("failures map to ErrUnavailable", func(t *testing.T) {
		locator := NewGPSD("localhost:2947", logger.New(slog.LevelError))
		locator.locateFn = func(_ context.Context) (Coordinate, error) {
			return Coordinate{}, errors.New("no fix received")
		}

		if _, err := locator.Locate(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %s", err)
		}
	})
}
