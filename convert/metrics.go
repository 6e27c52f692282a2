package convert

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts field conversions. A nil *Metrics records nothing.
type Metrics struct {
	conversions  *prometheus.CounterVec
	errors       *prometheus.CounterVec
	mapFallbacks prometheus.Counter
}

// NewMetrics creates the conversion metrics and registers them with registry.
// A nil registry returns nil.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	if registry == nil {
		return nil, nil
	}

	m := &Metrics{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artemis_field_conversions_total",
				Help: "Total number of field conversions by converter",
			},
			[]string{"converter"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artemis_field_conversion_errors_total",
				Help: "Total number of failed field conversions by converter",
			},
			[]string{"converter"},
		),
		mapFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "artemis_map_instantiation_fallbacks_total",
				Help: "Total number of declared maps replaced by a builtin map",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.conversions, m.errors, m.mapFallbacks} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(kind ConverterEnum, err error) {
	if m == nil {
		return
	}

	m.conversions.WithLabelValues(kind.String()).Inc()
	if err != nil {
		m.errors.WithLabelValues(kind.String()).Inc()
	}
}

func (m *Metrics) mapFallback() {
	if m == nil {
		return
	}

	m.mapFallbacks.Inc()
}
