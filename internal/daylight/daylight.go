// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package daylight decides whether a moment falls into daytime and selects
// the matching day/night weather iconography.
package daylight

import "time"

// refYear/refMonth/refDay form the arbitrary reference date all inputs are
// collapsed onto, so that the comparison happens purely on a 24-hour wheel.
const (
	refYear  = 2000
	refMonth = time.January
	refDay   = 1
)

// IsDaytime reports whether moment falls between sunrise (inclusive) and
// sunset (exclusive), comparing time-of-day only. When sunrise sorts at or
// after sunset on the 24-hour wheel (polar latitudes, or a pair crossing a
// date boundary) the daytime window wraps around midnight instead; a naive
// single range check would be wrong for every such pair.
func IsDaytime(moment, sunrise, sunset time.Time) bool {
	m := normalize(moment)
	rise := normalize(sunrise)
	set := normalize(sunset)

	if rise.Before(set) {
		return !m.Before(rise) && m.Before(set)
	}
	return !m.Before(rise) || m.Before(set)
}

// IconFor maps a WMO weather code to its day or night icon, depending on
// whether moment falls into daytime. Unrecognized codes fall back to a
// generic cloudy pair.
func IconFor(code int, moment, sunrise, sunset time.Time) string {
	return Icon(code, IsDaytime(moment, sunrise, sunset))
}

// Icon returns the day or night icon for a WMO weather code.
func Icon(code int, day bool) string {
	pair, ok := wmoIcons[code]
	if !ok {
		pair = fallbackIcon
	}
	if day {
		return pair.Day
	}
	return pair.Night
}

// Condition returns the human readable label for a WMO weather code.
func Condition(code int) string {
	if label, ok := wmoConditions[code]; ok {
		return label
	}
	return fallbackCondition
}

func normalize(t time.Time) time.Time {
	return time.Date(refYear, refMonth, refDay, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
