// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging wraps zap with the small surface the consensus engine
// actually uses: per-task child loggers, structured key/value fields, and a
// no-op implementation for tests that don't care about log output.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface threaded through every component. It is
// intentionally narrow compared to *zap.Logger so solvers and the job layer
// don't take a hard zap dependency in their signatures.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
}

type zapLogger struct {
	l *zap.Logger
}

// New builds a Logger writing human-readable console output at the given
// level. verbose raises the level to Debug; brief mode stays at Info.
func New(verbose bool) Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger; logging must never be
		// the reason a solve fails.
		l = zap.NewNop()
	}
	return &zapLogger{l: l}
}

// NoOp returns a Logger that discards everything, for tests and library
// embedding where the caller doesn't want console noise.
func NoOp() Logger {
	return &zapLogger{l: zap.NewNop()}
}

func (z *zapLogger) Debug(msg string, fields ...zap.Field) { z.l.Debug(msg, fields...) }
func (z *zapLogger) Info(msg string, fields ...zap.Field)  { z.l.Info(msg, fields...) }
func (z *zapLogger) Warn(msg string, fields ...zap.Field)  { z.l.Warn(msg, fields...) }
func (z *zapLogger) Error(msg string, fields ...zap.Field) { z.l.Error(msg, fields...) }

func (z *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{l: z.l.With(fields...)}
}
