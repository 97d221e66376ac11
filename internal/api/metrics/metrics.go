// Package metrics defines and registers all custom Prometheus metrics for the
// org-system API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orgtree"

// ── Promotion metrics ─────────────────────────────────────────────────────────

// PromotionsCommittedTotal counts committed promotions.
// Label:
//   - role: the new role applied (e.g. "site-supervisor")
var PromotionsCommittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promotions_committed_total",
		Help:      "Total number of promotions committed, by new role.",
	},
	[]string{"role"},
)

// PromotionRequestsTotal counts promotion request lifecycle events.
// Label:
//   - event: "created", "approved" or "rejected"
var PromotionRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promotion_requests_total",
		Help:      "Total number of promotion request lifecycle events.",
	},
	[]string{"event"},
)

// ValidationFailuresTotal counts rejected validation attempts.
// Label:
//   - reason: short failure kind (e.g. "illegal_transition", "unauthorized")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of promotion validations that failed, by reason.",
	},
	[]string{"reason"},
)

// ── Tree metrics ──────────────────────────────────────────────────────────────

// CascadeNodesUpdatedTotal counts descendant nodes rewritten by attribute
// cascades.
var CascadeNodesUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_nodes_updated_total",
		Help:      "Total number of descendant nodes updated by attribute cascades.",
	},
)

// TraversalDepthExceededTotal counts descendant walks that hit the depth
// bound. On well-formed data this never fires; a non-zero value indicates
// corrupted or circular parent links in the backing store.
var TraversalDepthExceededTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "traversal_depth_exceeded_total",
		Help:      "Total number of descendant walks truncated at the depth bound.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogCacheTotal counts program-site catalog cache decisions.
// Label:
//   - result: "hit" (served from Redis) or "miss" (loaded from the store)
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog lookups, labelled by cache result (hit/miss).",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// channel was full. The sink is fire-and-forget: dropping is preferred over
// blocking a core operation.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker channel.",
	},
)
