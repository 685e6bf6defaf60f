package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"adbdesk/pkg/adb"
)

const metricsNamespace = "adbdesk"

// commandMetrics counts and times every external process adbdesk runs.
type commandMetrics struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newCommandMetrics(reg prometheus.Registerer) *commandMetrics {
	m := &commandMetrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commands_total",
			Help:      "External commands run, by tool, subcommand and result.",
		}, []string{"tool", "subcommand", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "command_duration_seconds",
			Help:      "Wall time of external commands.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"tool", "subcommand"}),
	}
	reg.MustRegister(m.commands, m.duration)
	return m
}

// newMetricsRegistry returns a registry with the Go and process collectors.
func newMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// registerSessionGauge exposes the live mirroring session count.
func registerSessionGauge(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "mirror_sessions",
		Help:      "Running scrcpy sessions.",
	}, func() float64 { return float64(count()) }))
}

// instrumentedRunner wraps an adb.Runner with commandMetrics.
type instrumentedRunner struct {
	next    adb.Runner
	metrics *commandMetrics
}

func (r instrumentedRunner) Run(ctx context.Context, name string, args ...string) (adb.Result, error) {
	start := time.Now()
	res, err := r.next.Run(ctx, name, args...)

	tool, sub := toolName(name), subcommand(args)
	r.metrics.duration.WithLabelValues(tool, sub).Observe(time.Since(start).Seconds())
	r.metrics.commands.WithLabelValues(tool, sub, resultLabel(res, err)).Inc()
	return res, err
}

func toolName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".exe")
}

// subcommand skips the leading `-s <serial>` pair; shell commands are not
// split further so user input never becomes a label value.
func subcommand(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-s" {
			i++
			continue
		}
		if strings.HasPrefix(args[i], "-") {
			continue
		}
		return args[i]
	}
	return "none"
}

func resultLabel(res adb.Result, err error) string {
	switch {
	case err == nil && res.Success():
		return "ok"
	case err == nil:
		return "exit_error"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "spawn_error"
	}
}
