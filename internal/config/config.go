// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package config loads and validates the application's configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Xuanwo/go-locale"
	"github.com/go-playground/validator/v10"
	"github.com/kkyr/fig"
)

const (
	configEnv = "SKYCAST"

	DefaultTextTpl    = "{{.Current.Icon}} {{.Current.Temperature}}{{.TempUnit}}"
	DefaultTooltipTpl = "{{.Location}}\n{{.Current.Condition}}\n" +
		"{{loc \"apparent\"}}: {{.Current.ApparentTemperature}}{{.TempUnit}}\n" +
		"{{loc \"humidity\"}}: {{floatFormat .Current.RelativeHumidity 0}}%\n\n" +
		"{{.HourlyStrip}}\n\n{{.Outlook}}\n\n" +
		"{{loc \"sunrise\"}}: {{timeFormat .SunriseTime \"15:04\"}}\n" +
		"{{loc \"sunset\"}}: {{timeFormat .SunsetTime \"15:04\"}}\n" +
		"{{loc \"moonphase\"}}: {{.MoonPhaseIcon}} {{.MoonPhase}}"
)

var validate = validator.New()

// Config represents the application's configuration structure.
type Config struct {
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"imperial" validate:"oneof=metric imperial"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Weather struct {
		// Allowed value: 1 to 24
		StripHours uint `fig:"strip_hours" default:"12" validate:"min=1,max=24"`
		// Allowed value: 1 to 7
		OutlookDays uint `fig:"outlook_days" default:"5" validate:"min=1,max=7"`
	} `fig:"weather"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"15m"`
		Output        time.Duration `fig:"output" default:"30s"`
	} `fig:"intervals"`

	Search struct {
		MinQueryLength int           `fig:"min_query_length" default:"2" validate:"min=1"`
		Debounce       time.Duration `fig:"debounce" default:"300ms"`
	} `fig:"search"`

	Server struct {
		Enabled bool   `fig:"enabled"`
		Listen  string `fig:"listen" default:":8089"`
	} `fig:"server"`

	Store struct {
		File string `fig:"file"`
	} `fig:"store"`

	GeoLocation struct {
		EnableGPSD  bool   `fig:"enable_gpsd"`
		GPSDAddress string `fig:"gpsd_address" default:"localhost:2947"`
	} `fig:"geolocation"`

	Templates struct {
		Text    string `fig:"text"`
		Tooltip string `fig:"tooltip"`
	} `fig:"templates"`
}

// NewFromFile loads the Config from the given file, with environment
// overrides applied.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// New loads the default Config with environment overrides applied.
func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate checks field constraints and fills derived defaults.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid Config: %w", err)
	}
	if c.Locale == "" {
		c.Locale = detectLocale()
	}
	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}
	if c.Templates.Tooltip == "" {
		c.Templates.Tooltip = DefaultTooltipTpl
	}
	if c.Store.File == "" {
		home, _ := os.UserHomeDir()
		c.Store.File = filepath.Join(home, ".config", "skycast", "preferences.json")
	}

	return nil
}

func detectLocale() string {
	tag, err := locale.Detect()
	if err != nil {
		return "en-US"
	}
	return tag.String()
}
