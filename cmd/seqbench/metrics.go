package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/seqkit"
)

// PrometheusCollector implements seqkit.MetricsCollector on a private
// registry.
type PrometheusCollector struct {
	registry *prometheus.Registry

	acquires      *prometheus.CounterVec
	acquiredBytes prometheus.Counter
	releasedBytes prometheus.Counter
	inUse         prometheus.Gauge
	growths       *prometheus.CounterVec
	growthSize    *prometheus.HistogramVec
	opLatency     *prometheus.HistogramVec
}

var _ seqkit.MetricsCollector = (*PrometheusCollector)(nil)

func NewPrometheusCollector() *PrometheusCollector {
	p := &PrometheusCollector{
		registry: prometheus.NewRegistry(),
		acquires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seqkit_acquires_total",
			Help: "Storage acquisitions by outcome",
		}, []string{"status"}),
		acquiredBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seqkit_acquired_bytes_total",
			Help: "Bytes granted to containers",
		}),
		releasedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seqkit_released_bytes_total",
			Help: "Bytes handed back by containers",
		}),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seqkit_bytes_in_use",
			Help: "Bytes currently held by containers",
		}),
		growths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seqkit_growth_total",
			Help: "Structural growth steps by kind",
		}, []string{"kind"}),
		growthSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seqkit_growth_target_slots",
			Help:    "Size after each growth step, in slots",
			Buckets: prometheus.ExponentialBuckets(8, 4, 10),
		}, []string{"kind"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seqkit_workload_seconds",
			Help:    "Workload wall time",
			Buckets: prometheus.DefBuckets,
		}, []string{"workload", "status"}),
	}

	p.registry.MustRegister(
		p.acquires,
		p.acquiredBytes,
		p.releasedBytes,
		p.inUse,
		p.growths,
		p.growthSize,
		p.opLatency,
	)
	return p
}

// Registry returns the registry holding every seqkit metric.
func (p *PrometheusCollector) Registry() *prometheus.Registry { return p.registry }

func (p *PrometheusCollector) OnAcquire(bytes int64, err error) {
	if err != nil {
		p.acquires.WithLabelValues("error").Inc()
		return
	}
	p.acquires.WithLabelValues("success").Inc()
	p.acquiredBytes.Add(float64(bytes))
	p.inUse.Add(float64(bytes))
}

func (p *PrometheusCollector) OnRelease(bytes int64) {
	p.releasedBytes.Add(float64(bytes))
	p.inUse.Sub(float64(bytes))
}

func (p *PrometheusCollector) RecordGrowth(kind string, _, to int) {
	p.growths.WithLabelValues(kind).Inc()
	p.growthSize.WithLabelValues(kind).Observe(float64(to))
}

// ObserveWorkload records the wall time of one workload run.
func (p *PrometheusCollector) ObserveWorkload(name string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.opLatency.WithLabelValues(name, status).Observe(seconds)
}

// Summary flattens the counters into name/label keyed values for reports.
func (p *PrometheusCollector) Summary() (map[string]float64, error) {
	families, err := p.registry.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key+"_count"] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
