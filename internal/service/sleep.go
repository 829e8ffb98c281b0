// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/wneessen/skycast/internal/logger"
)

const (
	dbusInterface   = "org.freedesktop.login1.Manager"
	dbusWatchMember = "PrepareForSleep"

	resumeDebounce   = 2 // seconds
	signalBufferSize = 8

	busReconnectDelay  = 5 * time.Second
	networkWakeupDelay = 10 * time.Second
	reconnectDelay     = 2 * time.Second
)

// monitorSleepResume watches the login1 PrepareForSleep signal and
// refreshes the forecast after the system wakes up. A cached snapshot
// would otherwise show stale hours until the next scheduled fetch.
func (s *Service) monitorSleepResume(ctx context.Context) {
	var lastResumeUnix int64

	for {
		conn := s.connectToSystemBus(ctx)
		if conn == nil {
			return
		}

		if err := conn.AddMatchSignal(dbus.WithMatchInterface(dbusInterface),
			dbus.WithMatchMember(dbusWatchMember)); err != nil {
			s.logger.Error("failed to subscribe to dbus signal", slog.String("interface", dbusInterface),
				slog.String("member", dbusWatchMember), logger.Err(err))
			_ = conn.Close()
			select {
			case <-ctx.Done():
				return
			case <-time.After(busReconnectDelay):
				continue
			}
		}

		sigCh := make(chan *dbus.Signal, signalBufferSize)
		conn.Signal(sigCh)
		s.logger.Debug("subscribed to dbus signal", slog.String("interface", dbusInterface),
			slog.String("member", dbusWatchMember))

		s.handleSleepSignals(ctx, sigCh, &lastResumeUnix)

		conn.RemoveSignal(sigCh)
		if err := conn.Close(); err != nil {
			s.logger.Error("failed to close system bus connection", logger.Err(err))
		}

		select {
		case <-ctx.Done():
			return
		default:
			time.Sleep(reconnectDelay)
		}
	}
}

// connectToSystemBus retries until a connection is established or the
// context is canceled.
func (s *Service) connectToSystemBus(ctx context.Context) *dbus.Conn {
	for {
		conn, err := dbus.ConnectSystemBus()
		if err != nil {
			select {
			case <-time.After(busReconnectDelay):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		go func() {
			<-ctx.Done()
			if err := conn.Close(); err != nil {
				s.logger.Error("failed to close system bus connection", logger.Err(err))
			}
		}()

		return conn
	}
}

func (s *Service) handleSleepSignals(ctx context.Context, sigCh chan *dbus.Signal, lastResumeUnix *int64) {
	for {
		select {
		case <-ctx.Done():
			return
		case sgn, ok := <-sigCh:
			if !ok {
				// connection likely closed; caller reconnects
				return
			}
			s.processSleepSignal(ctx, sgn, lastResumeUnix)
		}
	}
}

// processSleepSignal reacts only to the resume half of PrepareForSleep.
func (s *Service) processSleepSignal(ctx context.Context, sgn *dbus.Signal, lastResumeUnix *int64) {
	if len(sgn.Body) != 1 {
		return
	}
	sleeping, ok := sgn.Body[0].(bool)
	if !ok || sleeping {
		return
	}

	now := time.Now().Unix()
	if now-atomic.LoadInt64(lastResumeUnix) < resumeDebounce {
		return
	}
	atomic.StoreInt64(lastResumeUnix, now)

	// Give the system time to re-establish its network connection.
	time.Sleep(networkWakeupDelay)

	s.logger.Debug("resumed from sleep, fetching latest forecast data")
	s.fetchWeather(ctx)
	s.printWeather(ctx)
}
