// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	m := defaultNoopMetrics()
	assert.NotPanics(t, func() {
		m.GetOrCreateCountVecMeter("c", []string{"a"}).AddWithLabel(1, map[string]string{"a": "x"})
		m.GetOrCreateGaugeMeter("g").Set(3)
		m.GetOrCreateHistogramMeter("h", nil).Observe(7)
	})

	rec := httptest.NewRecorder()
	m.GetOrCreateHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLazyLoad(t *testing.T) {
	calls := 0
	get := LazyLoad(func() int {
		calls++
		return 42
	})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 42, get())
	assert.Equal(t, 42, get())
	assert.Equal(t, 1, calls)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	InitializePrometheusMetrics()
	_, ok := metrics.(*prometheusMetrics)
	require.True(t, ok)

	counter := CounterVec("test_calls_total", []string{"outcome"})
	counter.AddWithLabel(2, map[string]string{"outcome": "ok"})
	CounterVec("test_calls_total", []string{"outcome"}).AddWithLabel(1, map[string]string{"outcome": "ok"})
	Gauge("test_accounts").Set(5)
	Histogram("test_duration", BucketMicros).Observe(30)

	srv := httptest.NewServer(HTTPHandler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `e9th_test_calls_total{outcome="ok"} 3`)
	assert.Contains(t, text, "e9th_test_accounts 5")
	assert.Contains(t, text, "e9th_test_duration_count 1")
}
