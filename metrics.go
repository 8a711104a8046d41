package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 请求结果标签
const (
	outcomeRendered = "rendered"
	outcomeStale    = "stale"
	outcomeFailed   = "failed"
	outcomeDropped  = "dropped" // 关闭后返回的响应
)

// Metrics 仪表盘运行指标，nil 接收者上的方法什么也不做
type Metrics struct {
	registry *prometheus.Registry

	fetches         *prometheus.CounterVec
	fetchLatency    *prometheus.HistogramVec
	lookups         prometheus.Counter
	debounceCancels prometheus.Counter
	polls           prometheus.Counter
}

// NewMetrics 在独立的 registry 上注册所有指标
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_fetch_total",
				Help: "Backend fetches by kind and outcome",
			}, []string{"kind", "outcome"}),
		fetchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_fetch_duration_seconds",
				Help:    "Backend fetch latency by kind",
				Buckets: prometheus.DefBuckets,
			}, []string{"kind"}),
		lookups: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_autocomplete_lookups_total",
				Help: "Autocomplete searches sent to the backend",
			}),
		debounceCancels: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_autocomplete_debounce_cancels_total",
				Help: "Pending autocomplete lookups replaced or cancelled before firing",
			}),
		polls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_price_polls_total",
				Help: "Price poller ticks",
			}),
	}
	m.registry.MustRegister(m.fetches, m.fetchLatency, m.lookups, m.debounceCancels, m.polls)
	return m
}

func (m *Metrics) observeFetch(kind FetchKind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(kind.String(), outcome).Inc()
	m.fetchLatency.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) lookup() {
	if m == nil {
		return
	}
	m.lookups.Inc()
}

func (m *Metrics) debounceCancel() {
	if m == nil {
		return
	}
	m.debounceCancels.Inc()
}

func (m *Metrics) poll() {
	if m == nil {
		return
	}
	m.polls.Inc()
}

// Serve 在 addr 上提供 /metrics，ctx 结束时关闭
func (m *Metrics) Serve(ctx context.Context, addr string) {
	if m == nil || addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	go func() {
		logInfo("log.metrics.listen", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logError("log.metrics.fail", addr, err)
		}
	}()
}
