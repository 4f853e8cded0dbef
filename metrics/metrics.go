// Package metrics 定义推荐链路的 Prometheus 指标。
//
// 指标以 *Metrics 实例承载，由调用方决定注册到哪个 Registerer；
// 所有方法对 nil 接收者安全，未配置指标时引擎照常工作。
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics 是推荐引擎的指标集合。
type Metrics struct {
	Requests        *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	CacheErrors     *prometheus.CounterVec
	Filtered        prometheus.Counter
	Results         prometheus.Histogram
	RequestDuration *prometheus.HistogramVec
}

// New 创建一组未注册的指标。
func New() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carmatch_recommend_requests_total",
				Help: "Count of recommendation requests by outcome (ok, invalid, error).",
			},
			[]string{"outcome"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carmatch_cache_lookups_total",
				Help: "Count of result cache lookups by result (hit, miss).",
			},
			[]string{"result"},
		),
		CacheErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carmatch_cache_errors_total",
				Help: "Count of result cache failures by operation (get, set, decode, encode).",
			},
			[]string{"op"},
		),
		Filtered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "carmatch_candidates_filtered_total",
				Help: "Count of inventory cars dropped by the filter gates.",
			},
		),
		Results: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "carmatch_recommend_results",
				Help:    "Number of recommendations returned per request.",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carmatch_recommend_duration_seconds",
				Help:    "Recommendation latency by source (cache, compute).",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
	}
}

// Register 把全部指标注册到 reg；reg 为 nil 时使用 prometheus.DefaultRegisterer。
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister 同 Register，失败时 panic。
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.collectors()...)
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Requests,
		m.CacheLookups,
		m.CacheErrors,
		m.Filtered,
		m.Results,
		m.RequestDuration,
	}
}

func (m *Metrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveCacheError(op string) {
	if m == nil {
		return
	}
	m.CacheErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveFiltered(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Filtered.Add(float64(n))
}

func (m *Metrics) ObserveResults(n int) {
	if m == nil {
		return
	}
	m.Results.Observe(float64(n))
}

func (m *Metrics) ObserveDuration(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(source).Observe(d.Seconds())
}

// WriteText 以 Prometheus 文本格式输出 g 中的全部指标，供没有 /metrics 端点的命令行场景使用。
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
