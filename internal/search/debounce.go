// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package search debounces a stream of place-name query updates against a
// geocoding backend: at most one request per typing pause, superseded
// in-flight results are discarded.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wneessen/skycast/internal/geocode"
	"github.com/wneessen/skycast/internal/logger"
)

const (
	// DefaultDelay is the typing pause after which a query is searched.
	DefaultDelay = 300 * time.Millisecond

	// DefaultMinQueryLength is the minimum query length; shorter queries
	// clear the results instead of searching.
	DefaultMinQueryLength = 2

	eventBufferSize = 16
)

// State describes the debouncer's lifecycle position.
type State int

const (
	Idle State = iota
	Pending
	Searching
	Error
)

// String satisfies fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Searching:
		return "searching"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted on every state transition. Results are only populated on
// the Idle transition that follows a successful search.
type Event struct {
	State   State
	Query   string
	Results []geocode.SearchResult
	Err     error
}

// response carries a geocode reply back into the event loop together with
// the generation that issued it.
type response struct {
	gen     uint64
	query   string
	results []geocode.SearchResult
	err     error
}

// Debouncer owns the search state machine. All state lives in the Run event
// loop goroutine; Update and geocode responses are messages into that loop,
// so no locking of the search state itself is needed.
type Debouncer struct {
	coder  geocode.Geocoder
	clock  clockwork.Clock
	delay  time.Duration
	minLen int
	logger *logger.Logger

	updates   chan string
	responses chan response
	events    chan Event

	stateMu sync.RWMutex
	state   State
}

// Option overrides defaults of a Debouncer.
type Option func(*Debouncer)

// WithClock replaces the wall clock, used by tests to control the timer.
func WithClock(clock clockwork.Clock) Option {
	return func(d *Debouncer) { d.clock = clock }
}

// WithDelay overrides the debounce delay.
func WithDelay(delay time.Duration) Option {
	return func(d *Debouncer) { d.delay = delay }
}

// WithMinQueryLength overrides the minimum query length.
func WithMinQueryLength(length int) Option {
	return func(d *Debouncer) { d.minLen = length }
}

// New returns a new Debouncer. Run must be called before updates are
// processed.
func New(coder geocode.Geocoder, log *logger.Logger, opts ...Option) *Debouncer {
	d := &Debouncer{
		coder:     coder,
		clock:     clockwork.NewRealClock(),
		delay:     DefaultDelay,
		minLen:    DefaultMinQueryLength,
		logger:    log,
		updates:   make(chan string, eventBufferSize),
		responses: make(chan response, eventBufferSize),
		events:    make(chan Event, eventBufferSize),
		state:     Idle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Update feeds one query-string update into the state machine.
func (d *Debouncer) Update(query string) {
	d.updates <- query
}

// Events returns the stream of state transitions.
func (d *Debouncer) Events() <-chan Event {
	return d.events
}

// State returns the current state.
func (d *Debouncer) State() State {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state
}

// Run executes the event loop until the context is cancelled. The debounce
// timer is cancelled on every new update and on teardown; in-flight geocode
// requests are not forcibly cancelled, their responses are ignored when a
// newer query has superseded them (last-query-wins).
func (d *Debouncer) Run(ctx context.Context) {
	var (
		gen     uint64
		pending string
		timer   clockwork.Timer
		timerC  <-chan time.Time
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return

		case query := <-d.updates:
			// every update starts a new generation; anything still in
			// flight for an older one is now stale
			gen++
			if len(query) < d.minLen {
				stopTimer()
				d.emit(Event{State: Idle, Query: query})
				continue
			}
			pending = query
			stopTimer()
			timer = d.clock.NewTimer(d.delay)
			timerC = timer.Chan()
			d.emit(Event{State: Pending, Query: query})

		case <-timerC:
			stopTimer()
			d.emit(Event{State: Searching, Query: pending})
			d.dispatch(ctx, gen, pending)

		case resp := <-d.responses:
			if resp.gen != gen {
				d.logger.Debug("discarding superseded search response",
					"query", resp.query)
				continue
			}
			if resp.err != nil {
				d.emit(Event{State: Error, Query: resp.query, Err: resp.err})
				continue
			}
			d.emit(Event{State: Idle, Query: resp.query, Results: resp.results})
		}
	}
}

// dispatch issues exactly one geocode request for the given query.
func (d *Debouncer) dispatch(ctx context.Context, gen uint64, query string) {
	go func() {
		results, err := d.coder.Search(ctx, query)
		select {
		case d.responses <- response{gen: gen, query: query, results: results, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (d *Debouncer) emit(event Event) {
	d.stateMu.Lock()
	d.state = event.State
	d.stateMu.Unlock()

	select {
	case d.events <- event:
	default:
		d.logger.Warn("dropping search event, consumer too slow",
			"state", event.State.String(), "query", event.Query)
	}
}
