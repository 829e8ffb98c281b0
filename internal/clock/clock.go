// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package clock localizes Unix instants into IANA timezones. The upstream
// weather API reports all times as UTC Unix timestamps, but forecast
// semantics ("today", "this hour") are local to the place being described,
// so converting with the host's own zone would be wrong for any non-local
// place.
package clock

import (
	"errors"
	"math"
	"sync"
	"time"
)

var (
	// ErrInvalidTimezone is returned when a timezone name is not a recognized
	// IANA zone identifier.
	ErrInvalidTimezone = errors.New("invalid IANA timezone name")

	// ErrInvalidInstant is returned when a Unix instant is not a finite number.
	ErrInvalidInstant = errors.New("instant is not a finite number")
)

// locations caches loaded IANA zones, keyed by zone name.
var locations sync.Map

// Localize interprets the instant unixSeconds in the named IANA timezone and
// returns it as a time.Time carrying that zone's location, so that field
// extraction and comparisons operate on the wall clock of that zone
// regardless of the host's local zone. Fractional seconds are preserved.
func Localize(unixSeconds float64, timezone string) (time.Time, error) {
	if math.IsNaN(unixSeconds) || math.IsInf(unixSeconds, 0) {
		return time.Time{}, ErrInvalidInstant
	}
	loc, err := Location(timezone)
	if err != nil {
		return time.Time{}, err
	}
	secs, frac := math.Modf(unixSeconds)
	return time.Unix(int64(secs), int64(frac*float64(time.Second))).In(loc), nil
}

// Location resolves an IANA timezone name, caching successful lookups.
func Location(timezone string) (*time.Location, error) {
	if cached, ok := locations.Load(timezone); ok {
		return cached.(*time.Location), nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		return nil, errors.Join(ErrInvalidTimezone, err)
	}
	locations.Store(timezone, loc)
	return loc, nil
}

// Now returns the current time on the wall clock of the named IANA zone.
func Now(timezone string) (time.Time, error) {
	loc, err := Location(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}
