package report

import (
	"context"
	"fmt"

	"github.com/jenian/i18ngrd/internal/analyzer"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics writes the result counters to a Prometheus textfile, the format
// read by node_exporter's textfile collector
type Metrics struct {
	path string
}

// NewMetrics creates a reporter writing the textfile at path
func NewMetrics(path string) *Metrics {
	return &Metrics{path: path}
}

// Collectors builds a fresh registry holding the gauges for one result
func Collectors(run Run, result analyzer.AnalysisResult) *prometheus.Registry {
	keys := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "i18ngrd_keys",
			Help: "Translation keys by reconciliation state",
		},
		[]string{"state"},
	)
	keys.WithLabelValues("total").Set(float64(result.TotalKeys))
	keys.WithLabelValues("used").Set(float64(result.UsedKeysCount))
	keys.WithLabelValues("dynamic").Set(float64(result.DynamicMatchedKeysCount))
	keys.WithLabelValues("ignored").Set(float64(result.IgnoredKeysCount))
	keys.WithLabelValues("unused").Set(float64(len(result.UnusedKeys)))
	keys.WithLabelValues("missing").Set(float64(len(result.MissingKeys)))

	coverage := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "i18ngrd_coverage_percent",
		Help: "Statically used keys as a percentage of catalog keys",
	})
	coverage.Set(float64(result.Coverage))

	patterns := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "i18ngrd_dynamic_patterns",
		Help: "Dynamic key patterns detected in source",
	})
	patterns.Set(float64(len(result.DynamicPatterns)))

	gaps := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "i18ngrd_language_gap_keys",
			Help: "Catalog keys a language does not define",
		},
		[]string{"language"},
	)
	for _, lang := range result.Languages {
		gaps.WithLabelValues(lang).Set(float64(len(result.LanguageGaps[lang])))
	}

	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "i18ngrd_last_run_timestamp_seconds",
		Help: "Unix time the analysis started",
	})
	if !run.StartedAt.IsZero() {
		lastRun.Set(float64(run.StartedAt.Unix()))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(keys, coverage, patterns, gaps, lastRun)
	return registry
}

// Report writes the textfile atomically
func (m *Metrics) Report(ctx context.Context, run Run, result analyzer.AnalysisResult, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(m.path, Collectors(run, result)); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", m.path, err)
	}
	return nil
}
