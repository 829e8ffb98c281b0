// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode defines the place-name search and reverse-geocoding
// interface and a caching wrapper for reverse lookups.
package geocode

import (
	"context"
	"errors"
)

// UnknownLocation is the display name used when a reverse lookup yields no
// usable settlement name.
const UnknownLocation = "Unknown Location"

// ErrLocationNotFound is returned when a search query matches no places.
var ErrLocationNotFound = errors.New("no matching location found")

// SearchResult is one candidate place for a search query. It is produced
// transiently and never persisted.
type SearchResult struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Place is the result of a reverse lookup for a coordinate.
type Place struct {
	City      string
	Latitude  float64
	Longitude float64
}

// Geocoder is implemented by each geocoding service backend.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string) ([]SearchResult, error)
	Reverse(ctx context.Context, lat, lon float64) (Place, error)
}
