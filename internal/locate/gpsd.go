// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package locate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/stratoberry/go-gpsd"

	"github.com/wneessen/skycast/internal/logger"
)

const (
	name       = "gpsd"
	fixTimeout = time.Second * 5

	fallbackAccuracy3DFix = 10 // ~10 m typical consumer GPS in open sky
	fallbackAccuracy2DFix = 25 // worse than 3D, but still accurate enough
)

// GPSD waits for a single position fix from a gpsd instance.
type GPSD struct {
	address string
	log     *logger.Logger
	timeout time.Duration

	// locateFn is swapped out in tests
	locateFn func(ctx context.Context) (Coordinate, error)
}

func NewGPSD(address string, log *logger.Logger) *GPSD {
	g := &GPSD{
		address: address,
		log:     log,
		timeout: fixTimeout,
	}
	g.locateFn = g.pollFix
	return g
}

func (g *GPSD) Name() string {
	return name
}

// Locate returns the first usable fix. Any failure is reported as
// ErrUnavailable so callers can fall back to stored coordinates.
func (g *GPSD) Locate(ctx context.Context) (Coordinate, error) {
	coord, err := g.locateFn(ctx)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	g.log.Debug("received position fix", "latitude", coord.Latitude,
		"longitude", coord.Longitude, "accuracy", coord.Accuracy)
	return coord, nil
}

func (g *GPSD) pollFix(ctx context.Context) (Coordinate, error) {
	session, err := gpsd.Dial(g.address)
	if err != nil {
		return Coordinate{}, fmt.Errorf("failed to connect to gpsd at %q: %w", g.address, err)
	}

	// Buffered so the filter callback never blocks the gpsd read loop.
	fix := make(chan Coordinate, 1)
	session.AddFilter("TPV", func(r interface{}) {
		tpv, ok := r.(*gpsd.TPVReport)
		if !ok || tpv.Mode < gpsd.Mode2D {
			return
		}
		select {
		case fix <- Coordinate{Latitude: tpv.Lat, Longitude: tpv.Lon, Accuracy: accuracy(tpv)}:
		default:
		}
	})
	done := session.Watch()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Coordinate{}, ctx.Err()
	case <-timer.C:
		return Coordinate{}, fmt.Errorf("no fix received within %s", g.timeout)
	case <-done:
		return Coordinate{}, fmt.Errorf("gpsd connection ended before a fix was received")
	case coord := <-fix:
		return coord, nil
	}
}

func accuracy(tpv *gpsd.TPVReport) float64 {
	switch {
	case tpv.Epx > 0 && tpv.Epy > 0:
		return math.Hypot(tpv.Epx, tpv.Epy)
	case tpv.Mode == gpsd.Mode3D:
		return fallbackAccuracy3DFix
	default:
		return fallbackAccuracy2DFix
	}
}
