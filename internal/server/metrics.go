package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records calculation and HTTP request metrics.
type Metrics struct {
	calculations *prometheus.CounterVec
	totals       prometheus.Histogram
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// NewMetrics registers footprint metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. Collectors that
// are already registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footprint",
		Name:      "calculations_total",
		Help:      "Footprint calculations by outcome",
	}, []string{"source", "result"})
	totals := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "footprint",
		Name:      "total_tonnes",
		Help:      "Distribution of calculated annual totals in tonnes of CO2",
		Buckets:   []float64{0.5, 1, 2, 4, 6, 8, 12, 16, 24, 32},
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footprint",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "code"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "footprint",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	var err error
	if calculations, err = register(reg, calculations); err != nil {
		return nil, err
	}
	if totals, err = register(reg, totals); err != nil {
		return nil, err
	}
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}

	return &Metrics{calculations: calculations, totals: totals, requests: requests, latency: latency}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
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

// RecordCalculation counts one calculation from source ("form" or "api").
// A nil err also records the total in the distribution.
func (m *Metrics) RecordCalculation(source string, total float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = errorCode(err)
	}
	m.calculations.WithLabelValues(source, result).Inc()
	if err == nil {
		m.totals.Observe(total)
	}
}

// RecordRequest records one served request.
func (m *Metrics) RecordRequest(route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}
