package internal

import "time"

// Logger receives engine diagnostics. The method set matches *slog.Logger,
// so a slog logger can be passed directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector receives cycle timings and invocation counts. The
// interface is dependency-free so callers can bridge to any backend.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type nopMetrics struct{}

func (nopMetrics) RecordDuration(string, time.Duration, map[string]string) {}
func (nopMetrics) IncrementCounter(string, map[string]string)              {}
