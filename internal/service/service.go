// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service drives the periodic fetch, render and output cycle.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/skycast/internal/clock"
	"github.com/wneessen/skycast/internal/config"
	"github.com/wneessen/skycast/internal/forecast"
	"github.com/wneessen/skycast/internal/geocode"
	"github.com/wneessen/skycast/internal/locate"
	"github.com/wneessen/skycast/internal/logger"
	"github.com/wneessen/skycast/internal/presenter"
	"github.com/wneessen/skycast/internal/store"
	"github.com/wneessen/skycast/internal/weather"
)

const fetchTimeout = time.Second * 10

// snapshot is the normalized forecast state shared between the fetch and
// output jobs. It is replaced as a whole on every successful fetch.
type snapshot struct {
	timezone string
	hours    []forecast.HourlyRecord
	days     []forecast.DailyRecord
	fetched  time.Time
}

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	scheduler gocron.Scheduler
	provider  weather.Provider
	geocoder  geocode.Geocoder
	presenter *presenter.Presenter
	prefs     *store.Prefs
	locator   locate.Locator
	out       io.Writer

	weatherLock sync.RWMutex
	weather     *snapshot
}

// Option overrides defaults of a Service instance.
type Option func(*Service)

// WithLocator enables device positioning on startup.
func WithLocator(locator locate.Locator) Option {
	return func(s *Service) { s.locator = locator }
}

// WithOutput redirects the rendered status line, used by tests.
func WithOutput(out io.Writer) Option {
	return func(s *Service) { s.out = out }
}

func New(conf *config.Config, log *logger.Logger, provider weather.Provider,
	geocoder geocode.Geocoder, prefs *store.Prefs, pres *presenter.Presenter,
	opts ...Option,
) (*Service, error) {
	if conf == nil || log == nil || provider == nil || geocoder == nil || prefs == nil || pres == nil {
		return nil, fmt.Errorf("all service dependencies are required")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	service := &Service{
		config:    conf,
		logger:    log,
		scheduler: scheduler,
		provider:  provider,
		geocoder:  geocoder,
		presenter: pres,
		prefs:     prefs,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

func (s *Service) Run(ctx context.Context) error {
	if s.locator != nil {
		s.locateDevice(ctx)
	}

	if err := s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.fetchWeather,
		"weather_update_job"); err != nil {
		return err
	}
	if err := s.createScheduledJob(ctx, s.config.Intervals.Output, s.printWeather,
		"weatherdata_output_job"); err != nil {
		return err
	}
	s.scheduler.Start()

	go s.monitorSleepResume(ctx)

	<-ctx.Done()
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration,
	task func(context.Context), jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// fetchWeather retrieves and normalizes the forecast for the stored
// location. The previous snapshot stays in place when anything fails.
func (s *Service) fetchWeather(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	location := s.prefs.Location()
	raw, err := s.provider.Fetch(fetchCtx, location.Latitude, location.Longitude)
	if err != nil {
		s.logger.Error("failed to fetch forecast data", logger.Err(err))
		return
	}

	hours, err := forecast.NormalizeHourly(raw.Hourly, raw.Timezone)
	if err != nil {
		s.logger.Error("failed to normalize hourly forecast data", logger.Err(err))
		return
	}
	days, err := forecast.NormalizeDaily(raw.Daily, raw.Timezone)
	if err != nil {
		s.logger.Error("failed to normalize daily forecast data", logger.Err(err))
		return
	}

	s.weatherLock.Lock()
	s.weather = &snapshot{
		timezone: raw.Timezone,
		hours:    hours,
		days:     days,
		fetched:  time.Now(),
	}
	s.weatherLock.Unlock()
	s.logger.Debug("forecast data updated", slog.String("timezone", raw.Timezone),
		slog.Int("hours", len(hours)), slog.Int("days", len(days)))
}

// printWeather renders the current snapshot and writes one status line.
// Without a snapshot nothing is written, the status bar keeps its last
// content.
func (s *Service) printWeather(context.Context) {
	s.weatherLock.RLock()
	snap := s.weather
	s.weatherLock.RUnlock()
	if snap == nil {
		s.logger.Debug("no forecast data available yet, skipping output")
		return
	}

	now, err := clock.Now(snap.timezone)
	if err != nil {
		s.logger.Error("failed to resolve forecast timezone", logger.Err(err))
		return
	}

	tplCtx := s.presenter.BuildContext(s.prefs.Location(), snap.hours, snap.days, now,
		s.prefs.Units())
	output, err := s.presenter.Render(tplCtx)
	if err != nil {
		s.logger.Error("failed to render output", logger.Err(err))
		return
	}

	if err = json.NewEncoder(s.out).Encode(output); err != nil {
		s.logger.Error("failed to encode output", logger.Err(err))
	}
}

// updateLocation resolves the place name for the given coordinate,
// persists it as the new stored location and refreshes the forecast.
func (s *Service) updateLocation(ctx context.Context, latitude, longitude float64) error {
	place, err := s.geocoder.Reverse(ctx, latitude, longitude)
	if err != nil {
		return fmt.Errorf("failed to reverse geocode coordinates: %w", err)
	}

	location := store.Location{
		Latitude:    latitude,
		Longitude:   longitude,
		DisplayName: place.City,
	}
	if err = s.prefs.SetLocation(location); err != nil {
		return fmt.Errorf("failed to persist location: %w", err)
	}
	s.logger.Debug("location updated", slog.String("city", place.City),
		slog.Float64("lat", latitude), slog.Float64("lon", longitude))

	s.fetchWeather(ctx)
	s.printWeather(ctx)
	return nil
}

// locateDevice asks the configured positioning source once. When no fix
// is available the stored location remains authoritative.
func (s *Service) locateDevice(ctx context.Context) {
	coord, err := s.locator.Locate(ctx)
	if err != nil {
		if errors.Is(err, locate.ErrUnavailable) {
			s.logger.Debug("no position fix available, keeping stored location")
			return
		}
		s.logger.Error("failed to determine device position", logger.Err(err))
		return
	}
	if err = s.updateLocation(ctx, coord.Latitude, coord.Longitude); err != nil {
		s.logger.Error("failed to apply device position", logger.Err(err))
	}
}
