// Package metrics defines the custom Prometheus metrics of the sales API.
// All collectors register with the default registry on package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sales"

// ── GraphQL transport ────────────────────────────────────────────────────────

// GraphQLRequestsTotal counts executed GraphQL documents.
// Labels:
//   - operation: operationName sent by the caller, "anonymous" when absent
//   - result: "ok" or "error" (any entry in the response errors list)
var GraphQLRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_requests_total",
		Help:      "Total number of GraphQL requests executed.",
	},
	[]string{"operation", "result"},
)

// GraphQLRequestDuration measures schema execution time per operation.
var GraphQLRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graphql_request_duration_seconds",
		Help:      "Duration of GraphQL document execution.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ResolverErrorsTotal counts errors returned by resolvers.
// Labels:
//   - operation: the root field, e.g. "nuevoPedido"
//   - code: the extensions.code sent to the caller
var ResolverErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolver_errors_total",
		Help:      "Total number of resolver errors, by operation and error code.",
	},
	[]string{"operation", "code"},
)

// ── Domain ───────────────────────────────────────────────────────────────────

var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	},
)

// OrderTransitionsTotal counts status changes, labelled by the new status.
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_changes_total",
		Help:      "Total number of order updates that set a status, by resulting status.",
	},
	[]string{"status"},
)

// StockRejectionsTotal counts line items refused for lack of stock.
var StockRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_rejections_total",
		Help:      "Total number of order line items rejected for insufficient stock.",
	},
)

// AuthAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or the lower-cased error code
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)
