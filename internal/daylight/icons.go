// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package daylight

// IconPair holds the day and night icon variants for a weather condition.
type IconPair struct {
	Day   string
	Night string
}

// fallbackIcon is the generic cloudy pair used for unrecognized codes.
var fallbackIcon = IconPair{Day: "☁️", Night: "☁️"}

// fallbackCondition is the label used for unrecognized codes.
const fallbackCondition = "Cloudy"

// wmoIcons maps WMO weather codes to their day/night icon pairs. The table
// is closed; codes not listed here resolve to fallbackIcon.
var wmoIcons = map[int]IconPair{
	0:  {Day: "☀️", Night: "🌙"},  // Clear sky
	1:  {Day: "🌤️", Night: "🌙"}, // Mainly clear
	2:  {Day: "⛅", Night: "☁️"},  // Partly cloudy
	3:  {Day: "☁️", Night: "☁️"}, // Overcast
	45: {Day: "🌫️", Night: "🌫️"}, // Fog
	48: {Day: "🌫️", Night: "🌫️"}, // Depositing rime fog
	51: {Day: "🌦️", Night: "🌧️"}, // Drizzle: Light
	53: {Day: "🌧️", Night: "🌧️"}, // Drizzle: Moderate
	55: {Day: "🌧️", Night: "🌧️"}, // Drizzle: Dense intensity
	56: {Day: "🌨️", Night: "🌨️"}, // Freezing drizzle: Light
	57: {Day: "🌨️", Night: "🌨️"}, // Freezing drizzle: Dense intensity
	61: {Day: "🌦️", Night: "🌧️"}, // Rain: Slight
	63: {Day: "🌧️", Night: "🌧️"}, // Rain: Moderate
	65: {Day: "🌧️", Night: "🌧️"}, // Rain: Heavy
	66: {Day: "🌨️", Night: "🌨️"}, // Freezing rain: Light
	67: {Day: "🌨️", Night: "🌨️"}, // Freezing rain: Heavy
	71: {Day: "🌨️", Night: "🌨️"}, // Snow fall: Slight
	73: {Day: "🌨️", Night: "🌨️"}, // Snow fall: Moderate
	75: {Day: "❄️", Night: "❄️"}, // Snow fall: Heavy
	77: {Day: "❄️", Night: "❄️"}, // Snow grains
	80: {Day: "🌦️", Night: "🌧️"}, // Rain showers: Slight
	81: {Day: "🌧️", Night: "🌧️"}, // Rain showers: Moderate
	82: {Day: "⛈️", Night: "⛈️"}, // Rain showers: Violent
	85: {Day: "🌨️", Night: "🌨️"}, // Snow showers: Slight
	86: {Day: "❄️", Night: "❄️"}, // Snow showers: Heavy
	95: {Day: "⛈️", Night: "⛈️"}, // Thunderstorm
	96: {Day: "⛈️", Night: "⛈️"}, // Thunderstorm with slight hail
	99: {Day: "🌩️", Night: "🌩️"}, // Thunderstorm with heavy hail
}

// wmoConditions maps WMO weather codes to their descriptions.
var wmoConditions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}
