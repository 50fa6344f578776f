// Package metrics defines and registers the custom Prometheus metrics of the
// task board API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry through promauto at
// package init; the /metrics route exposes them together with the HTTP
// request metrics from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Board metrics ─────────────────────────────────────────────────────────────

// TasksCreatedTotal counts tasks accepted by CreateTask.
// Label:
//   - status: the bucket the task was created in (e.g. "TO_DO")
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by initial status.",
	},
	[]string{"status"},
)

// TaskTransitionsTotal counts accepted transitions.
// Labels:
//   - from: status before the transition
//   - to:   status after the transition
var TaskTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_transitions_total",
		Help:      "Total number of accepted task transitions, by source and destination status.",
	},
	[]string{"from", "to"},
)

// TasksDeletedTotal counts deleted tasks.
var TasksDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_deleted_total",
		Help:      "Total number of tasks deleted.",
	},
)

// OperationRejectionsTotal counts rejected board mutations.
// Labels:
//   - operation: "create", "transition" or "delete"
//   - reason:    "forbidden", "not_found", "invalid_assignee", "wip_limit", "invalid_status"
var OperationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_rejections_total",
		Help:      "Total number of board operations rejected, by operation and reason.",
	},
	[]string{"operation", "reason"},
)

// RenormalizedPositionsTotal counts position rewrites performed while
// restoring dense ordering in a bucket.
var RenormalizedPositionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renormalized_positions_total",
		Help:      "Total number of task positions rewritten by bucket renormalization.",
	},
)

// RenormalizationFailuresTotal counts renormalization walks aborted by a
// storage error, leaving the bucket non-dense until its next transition.
var RenormalizationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renormalization_failures_total",
		Help:      "Total number of bucket renormalizations that failed part-way.",
	},
)

// ── Locking metrics ───────────────────────────────────────────────────────────

// ProjectLockWaitDuration measures how long a mutation waited for its
// project lock.
// Label:
//   - driver: "local" or "redis"
var ProjectLockWaitDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "project_lock_wait_seconds",
		Help:      "Time spent waiting to acquire a per-project lock.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"driver"},
)

// ProjectLockLostTotal counts leases that expired or changed hands before
// their holder released them.
// Label:
//   - driver: "local" or "redis"
var ProjectLockLostTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_lock_lost_total",
		Help:      "Project locks whose lease was lost while held.",
	},
	[]string{"driver"},
)
