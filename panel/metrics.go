package panel

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	ticks     prometheus.Counter
	events    *prometheus.CounterVec
	publishes prometheus.Counter
	dropped   prometheus.Counter
	offset    prometheus.Gauge
}

// newMetrics registers the panel's collectors on reg, labelled with the
// panel id so several panels can share one registry.
func newMetrics(reg prometheus.Registerer, panelID string) (*metrics, error) {
	f := promauto.With(nil)
	m := &metrics{
		ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ctrlpanel",
			Name:      "ticks_total",
			Help:      "Event loop iterations.",
		}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ctrlpanel",
			Name:      "events_total",
			Help:      "Input events dispatched, by type.",
		}, []string{"type"}),
		publishes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ctrlpanel",
			Name:      "publishes_total",
			Help:      "Widget values written to the store.",
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ctrlpanel",
			Name:      "publishes_dropped_total",
			Help:      "Widget values the store rejected.",
		}),
		offset: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "ctrlpanel",
			Name:      "scroll_offset",
			Help:      "Current vertical scroll offset in panel units.",
		}),
	}
	reg = prometheus.WrapRegistererWith(prometheus.Labels{"panel_id": panelID}, reg)
	for _, c := range []prometheus.Collector{m.ticks, m.events, m.publishes, m.dropped, m.offset} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("panel: register metrics: %w", err)
		}
	}
	return m, nil
}
