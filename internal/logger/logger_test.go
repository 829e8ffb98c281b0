// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("new should successfully create a logger", func(t *testing.T) {
		l := New(slog.LevelInfo)
		if l == nil {
			t.Fatal("expected logger to be non-nil")
		}
	})
}

func TestNewWithWriter(t *testing.T) {
	t.Run("logger logs successfully with different levels", func(t *testing.T) {
		tests := []struct {
			name        string
			level       slog.Level
			shouldDebug bool
			shouldInfo  bool
		}{
			{"DEBUG", slog.LevelDebug, true, true},
			{"INFO", slog.LevelInfo, false, true},
			{"WARN", slog.LevelWarn, false, false},
			{"ERROR", slog.LevelError, false, false},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				buf := bytes.NewBuffer(nil)
				l := NewWithWriter(buf, tc.level)
				l.Debug("debug message")
				if got := strings.Contains(buf.String(), "debug message"); got != tc.shouldDebug {
					t.Errorf("expected debug log presence to be %t, got %t", tc.shouldDebug, got)
				}
				buf.Reset()
				l.Info("info message")
				if got := strings.Contains(buf.String(), "info message"); got != tc.shouldInfo {
					t.Errorf("expected info log presence to be %t, got %t", tc.shouldInfo, got)
				}
			})
		}
	})
}

func TestErr(t *testing.T) {
	t.Run("error attribute carries the error", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewWithWriter(buf, slog.LevelError)
		l.Error("something failed", Err(errors.New("broken pipe")))
		if !strings.Contains(buf.String(), "broken pipe") {
			t.Errorf("expected log output to contain the error, got %q", buf.String())
		}
	})
}
