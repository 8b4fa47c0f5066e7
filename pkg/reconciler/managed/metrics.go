/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package managed

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edudppaz/ansible-aci/pkg/resource"
)

const (
	namespace = "aci"
	subsystem = "reconcile"
)

// Metrics records the outcome of reconciliations.
type Metrics interface {
	// Reconciled records a reconciliation of the supplied class that
	// reached the supplied outcome.
	Reconciled(class string, o resource.Outcome, d time.Duration)

	// Failed records a reconciliation of the supplied class that failed at
	// the supplied stage.
	Failed(class, stage string)
}

// NopMetrics does nothing.
type NopMetrics struct{}

// Reconciled does nothing.
func (NopMetrics) Reconciled(_ string, _ resource.Outcome, _ time.Duration) {}

// Failed does nothing.
func (NopMetrics) Failed(_, _ string) {}

// PrometheusMetrics records reconciliations as Prometheus metrics. It is a
// prometheus.Collector; register it with a registry to expose them.
type PrometheusMetrics struct {
	total    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusMetrics returns a new PrometheusMetrics.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "total",
			Help:      "Total number of reconciliations that completed, by class and outcome.",
		}, []string{"class", "outcome"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Total number of reconciliations that failed, by class and stage.",
		}, []string{"class", "stage"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Time taken by reconciliations that completed, by class.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"class"}),
	}
}

// Reconciled records a completed reconciliation.
func (m *PrometheusMetrics) Reconciled(class string, o resource.Outcome, d time.Duration) {
	m.total.WithLabelValues(class, string(o)).Inc()
	m.duration.WithLabelValues(class).Observe(d.Seconds())
}

// Failed records a failed reconciliation.
func (m *PrometheusMetrics) Failed(class, stage string) {
	m.errors.WithLabelValues(class, stage).Inc()
}

// Describe implements prometheus.Collector.
func (m *PrometheusMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.total.Describe(ch)
	m.errors.Describe(ch)
	m.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *PrometheusMetrics) Collect(ch chan<- prometheus.Metric) {
	m.total.Collect(ch)
	m.errors.Collect(ch)
	m.duration.Collect(ch)
}
