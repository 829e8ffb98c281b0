// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package forecast defines the raw upstream forecast payload and normalizes
// its parallel arrays into ordered, timezone-localized per-hour and per-day
// records.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/skycast/internal/clock"
)

// ErrMalformedForecast is returned when parallel arrays of the upstream
// payload differ in length, which indicates an upstream contract violation.
// Normalization fails loudly instead of truncating.
var ErrMalformedForecast = errors.New("malformed forecast payload")

// RawForecast mirrors the upstream Open-Meteo payload: groups of parallel
// arrays indexed by position, where index i across all arrays of a group
// describes the same hour or day, plus a single timezone name shared by all
// entries. Timestamps are Unix seconds.
type RawForecast struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Hourly    Hourly  `json:"hourly"`
	Daily     Daily   `json:"daily"`
}

// Hourly is the hourly group of parallel arrays.
type Hourly struct {
	Time                     []float64 `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	WeatherCode              []int     `json:"weathercode"`
	ApparentTemperature      []float64 `json:"apparent_temperature"`
	WindSpeed                []float64 `json:"windspeed_10m"`
	CloudCover               []float64 `json:"cloudcover"`
	UVIndex                  []float64 `json:"uv_index"`
	RelativeHumidity         []float64 `json:"relative_humidity_2m"`
	PressureMSL              []float64 `json:"pressure_msl"`
}

// Daily is the daily group of parallel arrays.
type Daily struct {
	Time                        []float64 `json:"time"`
	WeatherCode                 []int     `json:"weathercode"`
	TemperatureMax              []float64 `json:"temperature_2m_max"`
	TemperatureMin              []float64 `json:"temperature_2m_min"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	Sunrise                     []float64 `json:"sunrise"`
	Sunset                      []float64 `json:"sunset"`
}

// HourlyRecord is one normalized hour: a timezone-localized point in time
// plus the hourly metrics copied by position from the raw payload. Records
// are immutable and live for one forecast fetch.
type HourlyRecord struct {
	Time                     time.Time
	Temperature              float64
	PrecipitationProbability float64
	WeatherCode              int
	ApparentTemperature      float64
	WindSpeed                float64
	CloudCover               float64
	UVIndex                  float64
	RelativeHumidity         float64
	PressureMSL              float64
}

// DailyRecord is one normalized day of the multi-day outlook.
type DailyRecord struct {
	Time                        time.Time
	WeatherCode                 int
	TemperatureMax              float64
	TemperatureMin              float64
	PrecipitationProbabilityMax float64
	Sunrise                     time.Time
	Sunset                      time.Time
}

// NormalizeHourly combines the hourly parallel arrays into one HourlyRecord
// per index, localizing each timestamp into the given IANA timezone. Input
// order is preserved (the upstream API guarantees ascending timestamps, no
// re-sort happens here) and the output length always equals the input
// length. Any array length mismatch returns ErrMalformedForecast.
func NormalizeHourly(h Hourly, timezone string) ([]HourlyRecord, error) {
	n := len(h.Time)
	lengths := map[string]int{
		"temperature_2m":            len(h.Temperature),
		"precipitation_probability": len(h.PrecipitationProbability),
		"weathercode":               len(h.WeatherCode),
		"apparent_temperature":      len(h.ApparentTemperature),
		"windspeed_10m":             len(h.WindSpeed),
		"cloudcover":                len(h.CloudCover),
		"uv_index":                  len(h.UVIndex),
		"relative_humidity_2m":      len(h.RelativeHumidity),
		"pressure_msl":              len(h.PressureMSL),
	}
	for field, length := range lengths {
		if length != n {
			return nil, fmt.Errorf("%w: %s has %d entries, time has %d",
				ErrMalformedForecast, field, length, n)
		}
	}

	records := make([]HourlyRecord, n)
	for i := range n {
		localized, err := clock.Localize(h.Time[i], timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to localize hourly timestamp %d: %w", i, err)
		}
		records[i] = HourlyRecord{
			Time:                     localized,
			Temperature:              h.Temperature[i],
			PrecipitationProbability: h.PrecipitationProbability[i],
			WeatherCode:              h.WeatherCode[i],
			ApparentTemperature:      h.ApparentTemperature[i],
			WindSpeed:                h.WindSpeed[i],
			CloudCover:               h.CloudCover[i],
			UVIndex:                  h.UVIndex[i],
			RelativeHumidity:         h.RelativeHumidity[i],
			PressureMSL:              h.PressureMSL[i],
		}
	}
	return records, nil
}

// NormalizeDaily combines the daily parallel arrays into one DailyRecord per
// index under the same invariants as NormalizeHourly.
func NormalizeDaily(d Daily, timezone string) ([]DailyRecord, error) {
	n := len(d.Time)
	lengths := map[string]int{
		"weathercode":                   len(d.WeatherCode),
		"temperature_2m_max":            len(d.TemperatureMax),
		"temperature_2m_min":            len(d.TemperatureMin),
		"precipitation_probability_max": len(d.PrecipitationProbabilityMax),
		"sunrise":                       len(d.Sunrise),
		"sunset":                        len(d.Sunset),
	}
	for field, length := range lengths {
		if length != n {
			return nil, fmt.Errorf("%w: %s has %d entries, time has %d",
				ErrMalformedForecast, field, length, n)
		}
	}

	records := make([]DailyRecord, n)
	for i := range n {
		day, err := clock.Localize(d.Time[i], timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to localize daily timestamp %d: %w", i, err)
		}
		sunrise, err := clock.Localize(d.Sunrise[i], timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to localize sunrise timestamp %d: %w", i, err)
		}
		sunset, err := clock.Localize(d.Sunset[i], timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to localize sunset timestamp %d: %w", i, err)
		}
		records[i] = DailyRecord{
			Time:                        day,
			WeatherCode:                 d.WeatherCode[i],
			TemperatureMax:              d.TemperatureMax[i],
			TemperatureMin:              d.TemperatureMin[i],
			PrecipitationProbabilityMax: d.PrecipitationProbabilityMax[i],
			Sunrise:                     sunrise,
			Sunset:                      sunset,
		}
	}
	return records, nil
}

// CurrentHour returns the first record whose localized hour-of-day matches
// now's hour-of-day. If no record matches (the hourly window spans a
// different day window than now) the first record is returned as an
// approximate fallback rather than failing the whole render. Callers are
// expected to pass a now already localized into the forecast's timezone.
// An empty input returns the zero record.
func CurrentHour(records []HourlyRecord, now time.Time) HourlyRecord {
	if len(records) == 0 {
		return HourlyRecord{}
	}
	for _, record := range records {
		if record.Time.Hour() == now.Hour() {
			return record
		}
	}
	return records[0]
}
