package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_commands_total",
		Help: "Commands dispatched, by command name and outcome.",
	}, []string{"command", "outcome"})

	ModActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_mod_actions_total",
		Help: "Moderation actions performed, by kind and outcome.",
	}, []string{"kind", "outcome"})

	ComponentClicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_component_clicks_total",
		Help: "Message component interactions, by component family.",
	}, []string{"family"})

	DMFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_dm_failures_total",
		Help: "Moderation DMs that could not be delivered.",
	})

	GatewayEventDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bot_gateway_event_duration_seconds",
		Help:    "Time spent handling gateway events.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	RESTRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bot_rest_request_duration_seconds",
		Help:    "Discord REST round trip time, by method and status code.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"method", "status"})

	ActiveViews = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bot_active_paginated_views",
		Help: "Paginated list views currently live.",
	})
)

// ObserveEvent records a gateway handler duration.
func ObserveEvent(start time.Time) {
	GatewayEventDuration.Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on addr. Runs until the process exits; errors
// are logged, not fatal, since metrics are best-effort.
func Serve(addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warn("metrics listener stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
}
