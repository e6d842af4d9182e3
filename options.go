package fieldwatch

import (
	"errors"
	"time"
)

var (
	// ErrNilLogger is returned when WithLogger is given a nil logger.
	ErrNilLogger = errors.New("logger must not be nil")

	// ErrNilMetrics is returned when WithMetrics is given a nil collector.
	ErrNilMetrics = errors.New("metrics collector must not be nil")

	// ErrNilValueSource is returned when WithValueSource is given a nil source.
	ErrNilValueSource = errors.New("value source must not be nil")

	// ErrNilTable is returned when WithTable is given a nil table.
	ErrNilTable = errors.New("table must not be nil")
)

// Logger receives inspector diagnostics. The method set matches
// *slog.Logger, so a slog logger can be passed directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector receives cycle timings and invocation counts. The
// interface is dependency-free; bridge it to whatever backend the host
// editor uses.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
}

// ValueSource supplies the current value of a named field on an inspected
// object, called once per tracked field per cycle. Returning false skips the
// field silently. The default source reads exported struct fields through
// reflection.
type ValueSource interface {
	CurrentValue(object any, field string) (any, bool)
}

// Option configures an Inspector.
type Option func(*Inspector) error

// WithLogger sets the inspector's logger. Debug level carries selection and
// change traces; Error level carries handler failures.
func WithLogger(logger Logger) Option {
	return func(i *Inspector) error {
		if logger == nil {
			return ErrNilLogger
		}

		i.engine.SetLogger(logger)
		return nil
	}
}

// WithMetrics sets the inspector's metrics collector. It receives cycle
// durations, changed-field counts, and per-method invocation counts.
func WithMetrics(collector MetricsCollector) Option {
	return func(i *Inspector) error {
		if collector == nil {
			return ErrNilMetrics
		}

		i.engine.SetMetrics(collector)
		return nil
	}
}

// WithValueSource sets the field value provider, replacing the reflective
// default. This is the seam for a host editor's property system.
func WithValueSource(source ValueSource) Option {
	return func(i *Inspector) error {
		if source == nil {
			return ErrNilValueSource
		}

		i.engine.SetSource(source)
		return nil
	}
}

// WithTable makes the inspector resolve reactions from the given table
// instead of the default one.
func WithTable(table *Table) Option {
	return func(i *Inspector) error {
		if table == nil {
			return ErrNilTable
		}

		i.engine.SetTable(table.table)
		return nil
	}
}
