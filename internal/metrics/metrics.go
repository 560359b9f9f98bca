package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ElementsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gpml_elements_added_total",
		Help: "Total number of elements added to pathway models, labelled by kind.",
	}, []string{"kind"})

	ElementsRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gpml_elements_removed_total",
		Help: "Total number of elements removed from pathway models, labelled by kind.",
	}, []string{"kind"})

	EventsDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gpml_model_events_total",
		Help: "Total number of change events dispatched to model listeners.",
	})

	DanglingRefsRepaired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gpml_dangling_refs_repaired_total",
		Help: "Total number of dangling references cleared by the pre-save sweep.",
	})

	PathwaysValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gpml_pathways_validated_total",
		Help: "Total number of pathway documents validated, labelled by status.",
	}, []string{"status"})

	ValidationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gpml_validation_duration_ms",
		Help:    "Pathway document validation latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)
