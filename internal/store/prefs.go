// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"strconv"

	"github.com/wneessen/skycast/internal/units"
)

// Preference store keys.
const (
	KeyLatitude  = "weatherLat"
	KeyLongitude = "weatherLon"
	KeyCity      = "weatherCity"
	KeyUnits     = "weatherUnits"
)

// Startup defaults used when the store holds no value for a key.
const (
	DefaultLatitude  = 34.0522
	DefaultLongitude = -118.2437
	DefaultCity      = "Los Angeles"
	DefaultUnits     = units.Imperial
)

// Location is the place the forecast is fetched for. It mutates only on
// explicit user action (search selection or geolocation fix) and is
// persisted on change.
type Location struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Prefs is a typed wrapper over a Store for the skycast preference keys.
type Prefs struct {
	store Store
}

func NewPrefs(store Store) *Prefs {
	return &Prefs{store: store}
}

// Location returns the persisted location, falling back to the hardcoded
// defaults for missing or unparsable values.
func (p *Prefs) Location() Location {
	loc := Location{
		Latitude:    DefaultLatitude,
		Longitude:   DefaultLongitude,
		DisplayName: DefaultCity,
	}
	if raw, ok := p.store.Get(KeyLatitude); ok {
		if lat, err := strconv.ParseFloat(raw, 64); err == nil {
			loc.Latitude = lat
		}
	}
	if raw, ok := p.store.Get(KeyLongitude); ok {
		if lon, err := strconv.ParseFloat(raw, 64); err == nil {
			loc.Longitude = lon
		}
	}
	if city, ok := p.store.Get(KeyCity); ok && city != "" {
		loc.DisplayName = city
	}
	return loc
}

// SetLocation persists the location.
func (p *Prefs) SetLocation(loc Location) error {
	if err := p.store.Set(KeyLatitude, strconv.FormatFloat(loc.Latitude, 'f', -1, 64)); err != nil {
		return fmt.Errorf("failed to persist latitude: %w", err)
	}
	if err := p.store.Set(KeyLongitude, strconv.FormatFloat(loc.Longitude, 'f', -1, 64)); err != nil {
		return fmt.Errorf("failed to persist longitude: %w", err)
	}
	if err := p.store.Set(KeyCity, loc.DisplayName); err != nil {
		return fmt.Errorf("failed to persist city: %w", err)
	}
	return nil
}

// Units returns the persisted display unit preference, defaulting to
// imperial.
func (p *Prefs) Units() units.Units {
	if raw, ok := p.store.Get(KeyUnits); ok {
		if parsed, err := units.Parse(raw); err == nil {
			return parsed
		}
	}
	return DefaultUnits
}

// SetUnits persists the display unit preference.
func (p *Prefs) SetUnits(u units.Units) error {
	if err := p.store.Set(KeyUnits, u.String()); err != nil {
		return fmt.Errorf("failed to persist units: %w", err)
	}
	return nil
}
