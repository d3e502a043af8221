// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VltrnOne/E9th/log"
)

const namespace = "e9th"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches the singleton to prometheus. Meters
// resolved before the call stay noop. Calling it again keeps the registry.
func InitializePrometheusMetrics() {
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = newPrometheusMetrics()
	}
}

type prometheusMetrics struct {
	registry *prometheus.Registry
	meters   sync.Map // name => meter
}

func newPrometheusMetrics() *prometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &prometheusMetrics{registry: registry}
}

// meter returns the meter registered under name, building and registering
// it on first use. A name reused for another meter type panics.
func meter[M any](o *prometheusMetrics, name string, build func() (M, prometheus.Collector)) M {
	if m, ok := o.meters.Load(name); ok {
		return m.(M)
	}
	m, collector := build()
	actual, loaded := o.meters.LoadOrStore(name, m)
	if !loaded {
		if err := o.registry.Register(collector); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
	}
	return actual.(M)
}

func (o *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

func (o *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	return meter(o, name, func() (CountVecMeter, prometheus.Collector) {
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return promCountVec{vec}, vec
	})
}

func (o *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	return meter(o, name, func() (GaugeMeter, prometheus.Collector) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		return promGauge{g}, g
	})
}

func (o *prometheusMetrics) GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter {
	return meter(o, name, func() (HistogramMeter, prometheus.Collector) {
		bounds := make([]float64, len(buckets))
		for i, b := range buckets {
			bounds[i] = float64(b)
		}
		h := prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: name, Buckets: bounds})
		return promHistogram{h}, h
	})
}

type promCountVec struct{ vec *prometheus.CounterVec }

func (c promCountVec) AddWithLabel(i int64, labels map[string]string) {
	c.vec.With(labels).Add(float64(i))
}

type promGauge struct{ g prometheus.Gauge }

func (g promGauge) Add(i int64) { g.g.Add(float64(i)) }
func (g promGauge) Set(i int64) { g.g.Set(float64(i)) }

type promHistogram struct{ h prometheus.Histogram }

func (h promHistogram) Observe(i int64) { h.h.Observe(float64(i)) }
