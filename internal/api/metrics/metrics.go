// Package metrics defines and registers all custom Prometheus metrics for the
// FoodieShare recipe API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodieshare"

// RecipesCreatedTotal counts newly created recipes.
// Label:
//   - category: the free-form category tag of the recipe
var RecipesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_created_total",
		Help:      "Total number of recipes created, by category.",
	},
	[]string{"category"},
)

// RatingsSubmittedTotal counts rating submissions that were persisted.
// Label:
//   - score: the submitted score ("1".."5")
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of ratings recorded, by score.",
	},
	[]string{"score"},
)

// FavoritesToggledTotal counts favorite toggles.
// Label:
//   - state: "added" or "removed"
var FavoritesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorites_toggled_total",
		Help:      "Total number of favorite toggles, by resulting state.",
	},
	[]string{"state"},
)

// CacheRequestsTotal counts response-cache lookups.
// Label:
//   - result: "hit", "miss", or "error"
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of response cache lookups, by result.",
	},
	[]string{"result"},
)
