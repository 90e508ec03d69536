// Package observability wires the concrete logger and metrics implementations
// behind the types.Provider contract.
package observability

import (
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dowjones/factiva-core-go/observability/logger"
	"github.com/dowjones/factiva-core-go/observability/metrics"
	"github.com/dowjones/factiva-core-go/observability/types"
)

// Config holds provider configuration.
type Config struct {
	// ServiceName identifies the service in logs and metric names.
	ServiceName string
	// LogLevel is the minimum level to emit: debug, info, warn or error.
	LogLevel string
	// LogOutput defaults to os.Stdout when nil.
	LogOutput io.Writer
	// Registerer defaults to prometheus.DefaultRegisterer when nil.
	Registerer prometheus.Registerer
}

type provider struct {
	mu      sync.Mutex
	cfg     Config
	root    *logger.JSONLogger
	metrics *metrics.PrometheusMetrics
	loggers map[string]types.Logger
}

// NewProvider creates a provider backed by the JSON logger and Prometheus
// metrics. Loggers are cached per component.
func NewProvider(cfg Config) types.Provider {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "factiva"
	}
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &provider{
		cfg:     cfg,
		root:    logger.New(cfg.ServiceName, cfg.LogLevel, cfg.LogOutput),
		metrics: metrics.New(cfg.ServiceName, reg),
		loggers: make(map[string]types.Logger),
	}
}

func (p *provider) Logger(component string) types.Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.loggers[component]; ok {
		return l
	}
	l := p.root.WithFields(types.Fields{"component": component})
	p.loggers[component] = l
	return l
}

func (p *provider) Metrics(component string) types.Metrics {
	// Prometheus collectors are shared; the component shows up as the
	// operation label supplied by callers.
	return p.metrics
}
