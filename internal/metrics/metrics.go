// Package metrics records fetch run outcomes for the Prometheus textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/newstack-cloud/bluelink-docs/internal/releases"
)

// Run results used as the "result" label.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the fetch run collectors on an isolated registry.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal            *prometheus.CounterVec
	RunDurationSeconds   prometheus.Gauge
	LastSuccessTimestamp prometheus.Gauge
	ReleasesListed       prometheus.Gauge
	ComponentReleases    *prometheus.GaugeVec
	InstallerPresent     prometheus.Gauge
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bluelink_releases_fetch_runs_total",
				Help: "Number of release fetch runs by result.",
			},
			[]string{"result"},
		),
		RunDurationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bluelink_releases_fetch_duration_seconds",
			Help: "Duration of the last release fetch run.",
		}),
		LastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bluelink_releases_last_success_timestamp_seconds",
			Help: "Unix time of the last successful release fetch run.",
		}),
		ReleasesListed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bluelink_releases_listed",
			Help: "Releases returned by the repository listing in the last run.",
		}),
		ComponentReleases: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bluelink_releases_component_releases",
				Help: "Releases recorded per component in the release document.",
			},
			[]string{"component"},
		),
		InstallerPresent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bluelink_releases_windows_installer_present",
			Help: "1 when the release document records a Windows installer.",
		}),
	}

	reg.MustRegister(
		m.RunsTotal,
		m.RunDurationSeconds,
		m.LastSuccessTimestamp,
		m.ReleasesListed,
		m.ComponentReleases,
		m.InstallerPresent,
	)
	return m
}

// ObserveDocument records the per-component release counts of doc.
func (m *Metrics) ObserveDocument(doc *releases.Document) {
	if doc == nil {
		return
	}
	for _, c := range doc.Components {
		m.ComponentReleases.WithLabelValues(c.Key).Set(float64(len(c.Releases)))
	}
	if doc.WindowsInstaller != nil {
		m.InstallerPresent.Set(1)
	} else {
		m.InstallerPresent.Set(0)
	}
}

// RecordRun records the outcome of a run that finished at finished.
func (m *Metrics) RecordRun(err error, duration time.Duration, finished time.Time) {
	m.RunDurationSeconds.Set(duration.Seconds())
	if err != nil {
		m.RunsTotal.WithLabelValues(ResultFailure).Inc()
		return
	}
	m.RunsTotal.WithLabelValues(ResultSuccess).Inc()
	m.LastSuccessTimestamp.Set(float64(finished.Unix()))
}

// WriteTextfile writes the registry in text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
