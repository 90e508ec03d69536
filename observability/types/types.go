// Package types defines the logging and metrics contracts used by the Factiva
// client packages. Implementations live in the observability/logger and
// observability/metrics packages; callers that do not configure observability
// receive no-op instances.
package types

import "context"

// Fields carries structured log context as key-value pairs.
type Fields map[string]interface{}

// Logger is the structured, context-aware logging contract.
type Logger interface {
	Debug(ctx context.Context, msg string, fields Fields)
	Info(ctx context.Context, msg string, fields Fields)
	Warn(ctx context.Context, msg string, fields Fields)
	Error(ctx context.Context, msg string, err error, fields Fields)

	// WithFields returns a Logger that includes fields in every entry.
	WithFields(fields Fields) Logger
}

// Metrics is the metrics collection contract. Implementations are expected to
// be Prometheus-compatible.
type Metrics interface {
	RecordSuccess(operation string)
	RecordError(operation, errorType string)
	RecordDuration(operation string, seconds float64)
	RecordFileSize(fileType string, bytes int64)
	StartOperation(operation string)
	EndOperation(operation string)
}

// Provider hands out per-component Logger and Metrics instances.
type Provider interface {
	Logger(component string) Logger
	Metrics(component string) Metrics
}

// Nop returns a Provider whose loggers and metrics discard everything.
func Nop() Provider { return nopProvider{} }

type nopProvider struct{}

func (nopProvider) Logger(string) Logger   { return NopLogger{} }
func (nopProvider) Metrics(string) Metrics { return NopMetrics{} }

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Debug(context.Context, string, Fields)        {}
func (NopLogger) Info(context.Context, string, Fields)         {}
func (NopLogger) Warn(context.Context, string, Fields)         {}
func (NopLogger) Error(context.Context, string, error, Fields) {}
func (l NopLogger) WithFields(Fields) Logger                   { return l }

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) RecordSuccess(string)           {}
func (NopMetrics) RecordError(string, string)     {}
func (NopMetrics) RecordDuration(string, float64) {}
func (NopMetrics) RecordFileSize(string, int64)   {}
func (NopMetrics) StartOperation(string)          {}
func (NopMetrics) EndOperation(string)            {}
