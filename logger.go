// logger.go: Optional logging sink for soft resolution warnings
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"log"
	"os"
)

// Logger is the optional observability sink for Yacla. Soft resolution
// conditions (soft-required misses, default parse failures, custom loader
// failures) are reported here and never abort loading; a nil Logger changes
// nothing but visibility.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// stdLogger writes to stderr via the standard library logger.
type stdLogger struct {
	l *log.Logger
}

// NewStdLogger returns a Logger that writes prefixed lines to stderr.
func NewStdLogger() Logger {
	return &stdLogger{l: log.New(os.Stderr, "yacla: ", log.LstdFlags)}
}

func (s *stdLogger) Infof(format string, args ...any)  { s.l.Printf("INFO "+format, args...) }
func (s *stdLogger) Warnf(format string, args ...any)  { s.l.Printf("WARN "+format, args...) }
func (s *stdLogger) Errorf(format string, args ...any) { s.l.Printf("ERROR "+format, args...) }

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// NopLogger returns a Logger that discards all output.
func NopLogger() Logger { return nopLogger{} }

// ensureLogger makes nil loggers safe to call through.
func ensureLogger(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
