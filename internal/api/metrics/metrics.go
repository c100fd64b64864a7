// Package metrics defines the custom Prometheus metrics of the taskhub API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry through promauto on
// package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskhub"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login outcomes.
// Labels:
//   - action: "signup" or "login"
//   - result: "success", "invalid", "conflict", "unauthorized" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDecisionsTotal counts access-control decisions on existing tasks.
// Labels:
//   - role: the actor role
//   - op: "read", "update" or "delete"
//   - allowed: "true" or "false"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of task access decisions, by role, operation and outcome.",
	},
	[]string{"role", "op", "allowed"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - role: the role of the creating actor
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by creator role.",
	},
	[]string{"role"},
)

// ── Hash pool metrics ─────────────────────────────────────────────────────────

// HashQueueDepth tracks the number of password jobs waiting for a worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of password hash jobs waiting for a worker.",
	},
)

// HashDuration measures how long a single bcrypt job takes on a worker.
// Label:
//   - kind: "hash" or "verify"
var HashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hash_duration_seconds",
		Help:      "Duration of password hash and verify jobs on the worker pool.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"kind"},
)
