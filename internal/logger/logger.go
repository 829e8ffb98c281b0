// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package logger provides a thin wrapper around log/slog for the skycast service.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a type wrapper for slog.Logger
type Logger struct {
	*slog.Logger
}

// New returns a new Logger that writes to STDERR with the given log level.
func New(level slog.Level) *Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a new Logger that writes to the given io.Writer with the
// given log level.
func NewWithWriter(writer io.Writer, level slog.Level) *Logger {
	return &Logger{slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))}
}

// Err returns a slog.Attr for the given error.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
