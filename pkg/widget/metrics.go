package widget

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "chatwidget"

// MetricsObserver counts finished operations and records their latency.
type MetricsObserver struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var _ Observer = (*MetricsObserver)(nil)

// NewMetricsObserver registers the client collectors on reg. Collectors that
// are already registered are reused, so several clients may share one registry.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Finished client operations by op, outcome and HTTP status.",
	}, []string{"op", "outcome", "code"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Latency of client operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	var err error
	if requests, err = registerOrReuse(reg, requests); err != nil {
		return nil, err
	}
	if latency, err = registerOrReuse(reg, latency); err != nil {
		return nil, err
	}
	return &MetricsObserver{requests: requests, latency: latency}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *MetricsObserver) Observe(_ context.Context, ev Event) {
	var outcome string
	switch ev.Stage {
	case StageSuccess:
		outcome = "success"
	case StageFailure:
		outcome = "failure"
	default:
		return
	}

	code := "none"
	if ev.StatusCode > 0 {
		code = strconv.Itoa(ev.StatusCode)
	}
	m.requests.WithLabelValues(string(ev.Op), outcome, code).Inc()
	m.latency.WithLabelValues(string(ev.Op)).Observe(ev.Duration.Seconds())
}
