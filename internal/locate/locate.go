// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package locate provides device positioning through gpsd.
package locate

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no position can be determined, either
// because no positioning source is reachable or it denied the request.
var ErrUnavailable = errors.New("geolocation unavailable")

// Coordinate is a device position fix. Accuracy is the estimated
// horizontal error in meters.
type Coordinate struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// Locator is implemented by positioning sources.
type Locator interface {
	Name() string
	Locate(ctx context.Context) (Coordinate, error)
}
