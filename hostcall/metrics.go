package hostcall

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
)

// Metrics records per-operation call counts, latencies and result sizes.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	output   *prometheus.HistogramVec
}

// NewMetrics creates the bridge collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet_bridge",
			Name:      "calls_total",
			Help:      "Bridge calls by operation and result kind.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wallet_bridge",
			Name:      "call_duration_seconds",
			Help:      "Bridge call latency by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"operation"}),
		output: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wallet_bridge",
			Name:      "output_bytes",
			Help:      "Size of successful results by operation.",
			Buckets:   prometheus.ExponentialBuckets(32, 4, 10),
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{m.calls, m.duration, m.output} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register bridge metrics: %w", err)
		}
	}
	return m, nil
}

// Middleware returns a middleware that records every call.
func (m *Metrics) Middleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req entities.Request) (entities.Result, error) {
			name := operationName(ctx)
			start := time.Now()
			res, err := next(ctx, req)
			m.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			if err != nil {
				m.calls.WithLabelValues(name, errors.KindOf(err)).Inc()
				return res, err
			}
			m.calls.WithLabelValues(name, "ok").Inc()
			m.output.WithLabelValues(name).Observe(float64(res.Len()))
			return res, nil
		}
	}
}
