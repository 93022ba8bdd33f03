// Package metrics exposes lifecycle counters in the Prometheus format.
package metrics

import (
	"net/http"

	"kitchenpos/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kitchenpos"

// Recorder implements ports.LifecycleMetrics on a private registry.
type Recorder struct {
	registry      *prometheus.Registry
	ordersCreated *prometheus.CounterVec
	promoDiscount prometheus.Counter
	transitions   *prometheus.CounterVec
	observers     prometheus.Gauge
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		ordersCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_created_total",
				Help:      "Orders accepted, by whether the pairing discount applied",
			},
			[]string{"promo"},
		),
		promoDiscount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_discount_total",
			Help:      "Sum of pairing discounts granted",
		}),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_transitions_total",
				Help:      "Status transitions, by source status, target status and trigger",
			},
			[]string{"from", "to", "trigger"},
		),
		observers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_observers",
			Help:      "Connected websocket observers",
		}),
	}

	registry.MustRegister(
		r.ordersCreated,
		r.promoDiscount,
		r.transitions,
		r.observers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

func (r *Recorder) OrderCreated(promoApplied bool, discount float64) {
	label := "none"
	if promoApplied {
		label = "applied"
	}
	r.ordersCreated.WithLabelValues(label).Inc()
	if discount > 0 {
		r.promoDiscount.Add(discount)
	}
}

func (r *Recorder) OrderTransitioned(from, to order.Status, automatic bool) {
	trigger := "manual"
	if automatic {
		trigger = "timer"
	}
	r.transitions.WithLabelValues(from.String(), to.String(), trigger).Inc()
}

// ObserverGauge is handed to the websocket hub.
func (r *Recorder) ObserverGauge() prometheus.Gauge {
	return r.observers
}

// Handler serves the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
