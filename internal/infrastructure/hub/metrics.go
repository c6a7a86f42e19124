package hub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the router's prometheus collectors.
type Metrics struct {
	Connections prometheus.Gauge
	Groups      *prometheus.GaugeVec
	Deliveries  *prometheus.CounterVec
	Dropped     *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "ticketdesk",
			Subsystem: "hub",
			Name:      "connections",
			Help:      "Currently connected realtime handles",
		}),
		Groups: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ticketdesk",
			Subsystem: "hub",
			Name:      "groups",
			Help:      "Non-empty broadcast groups by kind",
		}, []string{"kind"}),
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ticketdesk",
			Subsystem: "hub",
			Name:      "deliveries_total",
			Help:      "Frames queued to handles by event",
		}, []string{"event"}),
		Dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ticketdesk",
			Subsystem: "hub",
			Name:      "dropped_total",
			Help:      "Frames not queued by reason",
		}, []string{"reason"}),
	}
}
