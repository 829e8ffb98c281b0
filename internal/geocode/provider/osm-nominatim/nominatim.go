// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package nominatim implements the geocode.Geocoder interface against the
// OSM Nominatim API.
package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/wneessen/skycast/internal/geocode"
	"github.com/wneessen/skycast/internal/http"
)

const (
	APISearchEndpoint  = "https://nominatim.openstreetmap.org/search"
	APIReverseEndpoint = "https://nominatim.openstreetmap.org/reverse"
	APITimeout         = time.Second * 10
	name               = "osm-nominatim"
)

// Nominatim usage policy allows at most one request per second.
const requestsPerSecond = 1

type Nominatim struct {
	http    *http.Client
	lang    language.Tag
	limiter *rate.Limiter

	searchEndpoint  string
	reverseEndpoint string
}

type searchResult struct {
	APILat      string `json:"lat"`
	APILon      string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
	} `json:"address"`
}

// Option overrides defaults of a Nominatim instance.
type Option func(*Nominatim)

// WithEndpoints points the client at alternative search/reverse endpoints
// (self-hosted instances, test servers).
func WithEndpoints(search, reverse string) Option {
	return func(n *Nominatim) {
		n.searchEndpoint = search
		n.reverseEndpoint = reverse
	}
}

func New(client *http.Client, lang language.Tag, opts ...Option) *Nominatim {
	n := &Nominatim{
		lang:            lang,
		http:            client,
		limiter:         rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		searchEndpoint:  APISearchEndpoint,
		reverseEndpoint: APIReverseEndpoint,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Nominatim) Name() string {
	return name
}

// Search resolves a free-form place query into candidate places. The place
// name is the display name up to the first comma, the country its trimmed
// last comma-segment.
func (n *Nominatim) Search(ctx context.Context, query string) ([]geocode.SearchResult, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	var found []searchResult
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("accept-language", n.lang.String())

	if _, err := n.http.GetWithTimeout(ctx, n.searchEndpoint, &found, params, nil, APITimeout); err != nil {
		return nil, fmt.Errorf("failed to fetch search results from Nominatim API: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %q", geocode.ErrLocationNotFound, query)
	}

	results := make([]geocode.SearchResult, 0, len(found))
	for _, item := range found {
		lat, err := strconv.ParseFloat(item.APILat, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err)
		}
		lon, err := strconv.ParseFloat(item.APILon, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err)
		}
		results = append(results, geocode.SearchResult{
			Name:      splitName(item.DisplayName),
			Country:   splitCountry(item.DisplayName),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return results, nil
}

// Reverse resolves a coordinate into a settlement name, preferring city over
// town over village and falling back to geocode.UnknownLocation.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (geocode.Place, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return geocode.Place{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	var result reverseResult
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("accept-language", n.lang.String())

	if _, err := n.http.GetWithTimeout(ctx, n.reverseEndpoint, &result, params, nil, APITimeout); err != nil {
		return geocode.Place{}, fmt.Errorf("failed to fetch reverse address details from Nominatim API: %w", err)
	}

	place := geocode.Place{
		City:      geocode.UnknownLocation,
		Latitude:  lat,
		Longitude: lon,
	}
	switch {
	case result.Address.City != "":
		place.City = result.Address.City
	case result.Address.Town != "":
		place.City = result.Address.Town
	case result.Address.Village != "":
		place.City = result.Address.Village
	}
	return place, nil
}

func splitName(displayName string) string {
	name, _, _ := strings.Cut(displayName, ",")
	return strings.TrimSpace(name)
}

func splitCountry(displayName string) string {
	segments := strings.Split(displayName, ",")
	return strings.TrimSpace(segments[len(segments)-1])
}
