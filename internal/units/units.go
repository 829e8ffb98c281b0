// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package units handles the display unit preference and temperature
// conversion. All stored temperatures are Celsius; conversion happens at
// render time only and converted values are never persisted or fed back
// into further calculations.
package units

import (
	"fmt"
	"math"
	"strings"
)

// Units is the process-wide display unit preference.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// Parse converts a unit preference string into a Units value.
func Parse(value string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "metric":
		return Metric, nil
	case "imperial":
		return Imperial, nil
	default:
		return "", fmt.Errorf("unsupported units: %q", value)
	}
}

// String satisfies fmt.Stringer.
func (u Units) String() string {
	return string(u)
}

// Symbol returns the display symbol for temperatures in the given units.
func (u Units) Symbol() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

// ToDisplay converts a Celsius temperature into a display integer in the
// given units. Rounding is half-away-from-zero and is applied exactly once,
// after the conversion.
func ToDisplay(celsius float64, u Units) int {
	temp := celsius
	if u == Imperial {
		temp = celsius*9/5 + 32
	}
	return int(math.Round(temp))
}
