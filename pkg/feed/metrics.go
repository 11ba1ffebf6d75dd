package feed

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a Sink exposing engine counters via Prometheus.
type Metrics struct {
	registry *prometheus.Registry

	ordersPlaced   *prometheus.CounterVec
	tradesExecuted *prometheus.CounterVec
	volumeTraded   *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
}

func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders accepted onto a book",
		}, []string{"symbol", "side"}),
		tradesExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_executed_total",
			Help:      "Total number of settled trades",
		}, []string{"symbol"}),
		volumeTraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "volume_traded_total",
			Help:      "Cumulative traded base quantity",
		}, []string{"symbol"}),
		lastPrice: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_trade_price",
			Help:      "Price of the most recent trade",
		}, []string{"symbol"}),
	}

	registry.MustRegister(m.ordersPlaced, m.tradesExecuted, m.volumeTraded, m.lastPrice)
	return m
}

func (m *Metrics) OrderPlaced(ev OrderEvent) {
	m.ordersPlaced.WithLabelValues(ev.Symbol, ev.Side).Inc()
}

func (m *Metrics) TradeExecuted(ev TradeEvent) {
	m.tradesExecuted.WithLabelValues(ev.Symbol).Inc()
	m.volumeTraded.WithLabelValues(ev.Symbol).Add(ev.Amount.InexactFloat64())
	m.lastPrice.WithLabelValues(ev.Symbol).Set(ev.Price.InexactFloat64())
}

// Handler returns an http.Handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
