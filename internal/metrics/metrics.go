package metrics

import (
	"context"

	"github.com/aretw0/unshell/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the prometheus collectors fed by the engine lifecycle hooks.
type Metrics struct {
	Registry *prometheus.Registry

	runs            *prometheus.CounterVec
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unshell_runs_total",
				Help: "Total number of finished script runs",
			},
			[]string{"variant", "outcome"},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unshell_commands_total",
				Help: "Total number of executed command lines",
			},
			[]string{"outcome"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "unshell_command_duration_seconds",
				Help:    "Duration of executed command lines",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"batch"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "unshell_commands_in_flight",
			Help: "Command lines currently running",
		}),
	}
	m.Registry.MustRegister(
		m.runs, m.commands, m.commandDuration, m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns lifecycle hooks recording into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			m.inFlight.Inc()
		},
		OnCommandReturn: func(ctx context.Context, e *domain.CommandEvent) {
			m.inFlight.Dec()
			m.commands.WithLabelValues(outcome(e.IsError)).Inc()
			batch := "false"
			if e.Batch {
				batch = "true"
			}
			m.commandDuration.WithLabelValues(batch).Observe(e.Duration.Seconds())
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			m.runs.WithLabelValues(e.Variant, outcome(e.Err != nil)).Inc()
		},
	}
}

func outcome(failed bool) string {
	if failed {
		return "failure"
	}
	return "success"
}
