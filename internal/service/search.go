// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/wneessen/skycast/internal/geocode"
	"github.com/wneessen/skycast/internal/search"
	"github.com/wneessen/skycast/internal/store"
)

// RunSearch runs the interactive place search. Typed queries are fed
// through the debouncer, a numeric line selects one of the last results
// and persists it as the new location. An empty line quits.
func (s *Service) RunSearch(ctx context.Context, in io.Reader, out io.Writer) error {
	debouncer := search.New(s.geocoder, s.logger,
		search.WithDelay(s.config.Search.Debounce),
		search.WithMinQueryLength(s.config.Search.MinQueryLength))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go debouncer.Run(runCtx)

	var resultsLock sync.Mutex
	var results []geocode.SearchResult
	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case event := <-debouncer.Events():
				switch event.State {
				case search.Searching:
					_, _ = fmt.Fprintf(out, "searching for %q...\n", event.Query)
				case search.Error:
					_, _ = fmt.Fprintf(out, "search failed: %s\n", event.Err)
				case search.Idle:
					if event.Results == nil {
						continue
					}
					resultsLock.Lock()
					results = event.Results
					resultsLock.Unlock()
					for i, result := range event.Results {
						_, _ = fmt.Fprintf(out, "[%d] %s, %s (%.4f, %.4f)\n", i+1,
							result.Name, result.Country, result.Latitude, result.Longitude)
					}
					_, _ = fmt.Fprintln(out, "enter a number to select, or keep typing")
				}
			}
		}
	}()

	_, _ = fmt.Fprintln(out, "type a place name, an empty line quits")
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil
		}

		if selection, err := strconv.Atoi(line); err == nil {
			resultsLock.Lock()
			list := results
			resultsLock.Unlock()
			if selection < 1 || selection > len(list) {
				_, _ = fmt.Fprintln(out, "invalid selection")
				continue
			}
			chosen := list[selection-1]
			if err = s.selectPlace(chosen); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "location set to %s, %s\n", chosen.Name, chosen.Country)
			return nil
		}

		debouncer.Update(line)
	}
	return scanner.Err()
}

func (s *Service) selectPlace(result geocode.SearchResult) error {
	location := store.Location{
		Latitude:    result.Latitude,
		Longitude:   result.Longitude,
		DisplayName: result.Name,
	}
	if err := s.prefs.SetLocation(location); err != nil {
		return fmt.Errorf("failed to persist selected location: %w", err)
	}
	return nil
}
