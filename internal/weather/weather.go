// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"

	"github.com/wneessen/skycast/internal/forecast"
)

// Provider is implemented by each weather API backend. Fetch returns the
// parsed raw payload for normalization; FetchRaw returns the upstream JSON
// body verbatim for the relay endpoint.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64) (*forecast.RawForecast, error)
	FetchRaw(ctx context.Context, lat, lon float64) ([]byte, error)
}
