package editor

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem = "formstate"

type metrics struct {
	renders   prometheus.Counter
	passes    prometheus.Histogram
	unsettled prometheus.Counter
	dirty     prometheus.Gauge
	invalid   prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: metricsSubsystem,
			Name:      "renders_total",
			Help:      "Total number of editor renders",
		}),
		passes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Subsystem: metricsSubsystem,
			Name:      "render_passes",
			Help:      "Reconciliation passes needed for a render to settle",
			Buckets:   []float64{1, 2, 3, 4, 6, 8},
		}),
		unsettled: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: metricsSubsystem,
			Name:      "renders_unsettled_total",
			Help:      "Renders stopped at the pass limit",
		}),
		dirty: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: metricsSubsystem,
			Name:      "dirty",
			Help:      "1 while the edited value differs from upstream data",
		}),
		invalid: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: metricsSubsystem,
			Name:      "invalid",
			Help:      "1 while any field holds validation results",
		}),
	}
}

// register adds the collectors to reg. Collectors registered by another
// editor are reused.
func (m *metrics) register(reg prometheus.Registerer) error {
	if reg == nil {
		return nil
	}
	if err := registerCollector(reg, &m.renders); err != nil {
		return err
	}
	if err := registerCollector(reg, &m.passes); err != nil {
		return err
	}
	if err := registerCollector(reg, &m.unsettled); err != nil {
		return err
	}
	if err := registerCollector(reg, &m.dirty); err != nil {
		return err
	}
	return registerCollector(reg, &m.invalid)
}

func registerCollector[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if !ok {
		return err
	}
	if existing, ok := are.ExistingCollector.(T); ok {
		*c = existing
	}
	return nil
}

func (m *metrics) observe(passes int, settled, clean, valid bool) {
	if m == nil {
		return
	}
	m.renders.Inc()
	m.passes.Observe(float64(passes))
	if !settled {
		m.unsettled.Inc()
	}
	m.dirty.Set(flag(!clean))
	m.invalid.Set(flag(!valid))
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
