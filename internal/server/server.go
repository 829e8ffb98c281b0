// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package server exposes the forecast relay and place search over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wneessen/skycast/internal/config"
	"github.com/wneessen/skycast/internal/geocode"
	"github.com/wneessen/skycast/internal/logger"
	"github.com/wneessen/skycast/internal/weather"
)

const shutdownTimeout = time.Second * 5

var validate = validator.New()

type Server struct {
	app      *fiber.App
	conf     *config.Config
	log      *logger.Logger
	provider weather.Provider
	geocoder geocode.Geocoder
}

func New(conf *config.Config, log *logger.Logger, provider weather.Provider,
	geocoder geocode.Geocoder,
) (*Server, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("weather provider is required")
	}
	if geocoder == nil {
		return nil, fmt.Errorf("geocoder is required")
	}

	s := &Server{conf: conf, log: log, provider: provider, geocoder: geocoder}
	s.app = fiber.New(fiber.Config{
		AppName:               "skycast",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.routes()
	return s, nil
}

// Run serves the HTTP API until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- s.app.Listen(s.conf.Server.Listen)
	}()
	s.log.Info("http server started", "address", s.conf.Server.Listen)

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}

func (s *Server) routes() {
	api := s.app.Group("/api")
	api.Get("/weather", s.handleWeather)
	api.Get("/search", s.handleSearch)
	api.Get("/reverse", s.handleReverse)

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// handleWeather relays the upstream forecast payload unmodified. The
// response body is the exact bytes the weather API returned.
func (s *Server) handleWeather(c *fiber.Ctx) error {
	coord, err := parseCoordinateQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	body, err := s.provider.FetchRaw(c.UserContext(), coord.Lat, coord.Lon)
	if err != nil {
		s.log.Error("failed to relay forecast data", logger.Err(err))
		return fiber.NewError(fiber.StatusBadGateway, "upstream weather service unavailable")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "q query parameter is required")
	}

	results, err := s.geocoder.Search(c.UserContext(), query)
	if err != nil {
		if errors.Is(err, geocode.ErrLocationNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no places match the requested query")
		}
		s.log.Error("failed to search for places", logger.Err(err))
		return fiber.NewError(fiber.StatusBadGateway, "upstream geocoding service unavailable")
	}

	return c.JSON(results)
}

func (s *Server) handleReverse(c *fiber.Ctx) error {
	coord, err := parseCoordinateQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	place, err := s.geocoder.Reverse(c.UserContext(), coord.Lat, coord.Lon)
	if err != nil {
		s.log.Error("failed to reverse geocode", logger.Err(err))
		return fiber.NewError(fiber.StatusBadGateway, "upstream geocoding service unavailable")
	}

	return c.JSON(place)
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// coordinateQuery holds the query parameters identifying a coordinate.
type coordinateQuery struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

func parseCoordinateQuery(c *fiber.Ctx) (coordinateQuery, error) {
	var q coordinateQuery

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	var err error
	if q.Lat, err = strconv.ParseFloat(latStr, 64); err != nil {
		return q, errors.New("lat must be a decimal degree value")
	}
	if q.Lon, err = strconv.ParseFloat(lonStr, 64); err != nil {
		return q, errors.New("lon must be a decimal degree value")
	}

	if err = validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
