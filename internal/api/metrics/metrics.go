// Package metrics defines and registers all custom Prometheus metrics for the
// sweet shop inventory API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// PurchasesTotal counts successful stock decrements.
// Label:
//   - category: the catalog category of the purchased sweet
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of successful purchases, by category.",
	},
	[]string{"category"},
)

// OutOfStockTotal counts purchases rejected because the quantity was already
// zero.
var OutOfStockTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "out_of_stock_total",
		Help:      "Total number of purchases rejected due to exhausted stock.",
	},
)

// RestocksTotal counts successful restock operations.
var RestocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restocks_total",
		Help:      "Total number of successful restocks.",
	},
)

// SweetsCreatedTotal counts newly created catalog entries.
// Label:
//   - category: the catalog category of the new sweet
var SweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweets_created_total",
		Help:      "Total number of catalog entries created, by category.",
	},
	[]string{"category"},
)
