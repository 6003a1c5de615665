// Package metrics exposes the batch counters on the default Prometheus
// registry; cmd serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItemsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpsignal_items_fetched_total",
		Help: "Raw items collected, by source.",
	}, []string{"source"})

	EventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpsignal_events_published_total",
		Help: "Enriched crisis records dispatched to the sinks.",
	})

	ItemsFiltered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpsignal_items_filtered_total",
		Help: "Items classified as not a crisis and skipped.",
	})

	ItemErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpsignal_item_errors_total",
		Help: "Items whose processing failed.",
	})
)
