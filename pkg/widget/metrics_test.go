package widget

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserver_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	var status atomic.Int32
	status.Store(http.StatusOK)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}, WithObserver(m))

	require.True(t, c.DeleteAttachment(context.Background(), "v1").Success)
	status.Store(http.StatusNotFound)
	require.False(t, c.DeleteAttachment(context.Background(), "v2").Success)
	require.False(t, c.DeleteAttachment(context.Background(), "").Success)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("delete_attachment", "success", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("delete_attachment", "failure", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("delete_attachment", "failure", "none")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestNewMetricsObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetricsObserver(reg)
	require.NoError(t, err)
	second, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	assert.Same(t, first.requests, second.requests)
	assert.Same(t, first.latency, second.latency)
}
