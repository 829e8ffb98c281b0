// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux

// Package main implements the skycast service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/wneessen/skycast/internal/config"
	"github.com/wneessen/skycast/internal/geocode"
	nominatim "github.com/wneessen/skycast/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/skycast/internal/http"
	"github.com/wneessen/skycast/internal/i18n"
	"github.com/wneessen/skycast/internal/locate"
	"github.com/wneessen/skycast/internal/logger"
	"github.com/wneessen/skycast/internal/presenter"
	"github.com/wneessen/skycast/internal/server"
	"github.com/wneessen/skycast/internal/service"
	"github.com/wneessen/skycast/internal/store"
	openmeteo "github.com/wneessen/skycast/internal/weather/provider/open-meteo"
)

const (
	cacheHitTTL  = time.Hour * 24
	cacheMissTTL = time.Minute * 10
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT,
		os.Interrupt)
	defer cancel()

	// Environment overrides may live in a .env file next to the binary.
	_ = godotenv.Load()

	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	searchMode := flag.Bool("search", false, "run the interactive place search")
	flag.Parse()

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)

	localizer, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	httpClient := http.New(log)
	provider, err := openmeteo.New(httpClient, log)
	if err != nil {
		log.Error("failed to initialize weather provider", logger.Err(err))
		os.Exit(1)
	}
	geocoder := geocode.NewCachedGeocoder(nominatim.New(httpClient, language.Make(conf.Locale)),
		cacheHitTTL, cacheMissTTL)

	fileStore, err := store.OpenFileStore(conf.Store.File)
	if err != nil {
		log.Error("failed to open preference store", logger.Err(err))
		os.Exit(1)
	}
	prefs := store.NewPrefs(fileStore)

	pres, err := presenter.New(conf, localizer)
	if err != nil {
		log.Error("failed to initialize presenter", logger.Err(err))
		os.Exit(1)
	}

	opts := []service.Option{}
	if conf.GeoLocation.EnableGPSD {
		opts = append(opts, service.WithLocator(locate.NewGPSD(conf.GeoLocation.GPSDAddress, log)))
	}
	serv, err := service.New(conf, log, provider, geocoder, prefs, pres, opts...)
	if err != nil {
		log.Error("failed to initialize skycast service", logger.Err(err))
		os.Exit(1)
	}

	if *searchMode {
		if err = serv.RunSearch(ctx, os.Stdin, os.Stdout); err != nil {
			log.Error("place search failed", logger.Err(err))
			os.Exit(1)
		}
		return
	}

	if conf.Server.Enabled {
		srv, err := server.New(conf, log, provider, geocoder)
		if err != nil {
			log.Error("failed to initialize http server", logger.Err(err))
			os.Exit(1)
		}
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error("http server failed", logger.Err(err))
				cancel()
			}
		}()
	}

	log.Info("starting skycast service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error("failed to run skycast service", logger.Err(err))
	}
	log.Info("shutting down skycast service")
}

// loadConfig prefers an explicit -config path, then the default config
// location, then built-in defaults.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "skycast", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
