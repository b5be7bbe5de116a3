// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the application logger, a zap sugared logger with a
// companion security event logger.
type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

// Security returns the security event logger.
func (l *Logger) Security() *SecurityLogger {
	return l.security
}

// NewLogger creates a JSON logger at the given level.
// Unknown levels fall back to error.
func NewLogger(l string) *Logger {
	level, err := zapcore.ParseLevel(strings.ToLower(l))
	if err != nil {
		level = zapcore.ErrorLevel
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	c.EncoderConfig.TimeKey = "@timestamp"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}

	lg := new(Logger)
	lg.SugaredLogger = logger.Sugar()
	lg.security = newSecurityLogger(logger)

	lg.Debugf("logger initialized with level %s", level)

	return lg
}
