// Package logger provides a JSON structured logger suitable for log
// aggregation systems. Entries carry a fixed set of standard fields
// (timestamp, level, service, component) plus caller-supplied context.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dowjones/factiva-core-go/observability/types"
)

// Level represents log message severity.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel converts a level name to a Level. Unrecognized names default to
// InfoLevel.
func ParseLevel(level string) Level {
	switch level {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// JSONLogger implements types.Logger with one JSON object per line.
type JSONLogger struct {
	mu               sync.Mutex
	output           io.Writer
	serviceName      string
	minLevel         Level
	persistentFields types.Fields
}

// New creates a JSONLogger. If output is nil it defaults to os.Stdout.
func New(serviceName, logLevel string, output io.Writer) *JSONLogger {
	if output == nil {
		output = os.Stdout
	}
	return &JSONLogger{
		output:      output,
		serviceName: serviceName,
		minLevel:    ParseLevel(logLevel),
	}
}

func (l *JSONLogger) Debug(ctx context.Context, msg string, fields types.Fields) {
	l.log(ctx, DebugLevel, msg, nil, fields)
}

func (l *JSONLogger) Info(ctx context.Context, msg string, fields types.Fields) {
	l.log(ctx, InfoLevel, msg, nil, fields)
}

func (l *JSONLogger) Warn(ctx context.Context, msg string, fields types.Fields) {
	l.log(ctx, WarnLevel, msg, nil, fields)
}

func (l *JSONLogger) Error(ctx context.Context, msg string, err error, fields types.Fields) {
	l.log(ctx, ErrorLevel, msg, err, fields)
}

// WithFields returns a logger that includes fields in every entry.
func (l *JSONLogger) WithFields(fields types.Fields) types.Logger {
	merged := make(types.Fields, len(l.persistentFields)+len(fields))
	for k, v := range l.persistentFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &JSONLogger{
		output:           l.output,
		serviceName:      l.serviceName,
		minLevel:         l.minLevel,
		persistentFields: merged,
	}
}

func (l *JSONLogger) log(_ context.Context, level Level, msg string, err error, fields types.Fields) {
	if level < l.minLevel {
		return
	}

	entry := make(map[string]interface{}, len(l.persistentFields)+len(fields)+5)
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["service"] = l.serviceName
	entry["message"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}
	for k, v := range l.persistentFields {
		entry[k] = v
	}
	for k, v := range fields {
		if e, ok := v.(error); ok && e != nil {
			entry[k] = e.Error()
			continue
		}
		entry[k] = v
	}

	line, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		line = []byte(fmt.Sprintf(`{"level":"error","message":"failed to marshal log entry: %v"}`, marshalErr))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write(append(line, '\n'))
}
