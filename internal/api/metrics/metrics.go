// Package metrics defines and registers the custom Prometheus metrics of the
// dashboard. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics register with the default registry on import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Backend gateway ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls made through the backend gateway.
// Label:
//   - class: "2xx", "4xx", "5xx", ... or "transport_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend requests issued through the gateway, by status class.",
	},
	[]string{"class"},
)

// BackendRequestDuration measures backend round-trip latency.
var BackendRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of backend requests issued through the gateway.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ForcedLogoutsTotal counts 401 responses that cleared a credential and
// forced a login navigation.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of credentials invalidated by a backend 401.",
	},
)

// ── Session ───────────────────────────────────────────────────────────────────

// IdentityResolutionsTotal counts GET /users/me outcomes.
// Label:
//   - result: "ok", "error" or "stale"
var IdentityResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_resolutions_total",
		Help:      "Total number of identity refreshes, by result.",
	},
	[]string{"result"},
)

// ── Maintenance ───────────────────────────────────────────────────────────────

// MaintenancePollsTotal counts maintenance status reads.
// Label:
//   - result: "active", "inactive" or "failed" (failed reads fail open)
var MaintenancePollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "maintenance_polls_total",
		Help:      "Total number of maintenance status reads, by result.",
	},
	[]string{"result"},
)

// MaintenanceActive is 1 while the last known state is maintenance.
var MaintenanceActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "maintenance_active",
		Help:      "Whether the last maintenance read reported maintenance mode (1) or not (0).",
	},
)

// ── Routing ───────────────────────────────────────────────────────────────────

// GuardOutcomesTotal counts route guard decisions.
// Labels:
//   - route: the guarded route path (e.g. "/savings")
//   - outcome: "render", "redirect", "block" or "wait"
var GuardOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_outcomes_total",
		Help:      "Total number of route guard decisions, by route and outcome.",
	},
	[]string{"route", "outcome"},
)
