package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ContainersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intermodal_containers_registered_total",
		Help: "Total number of containers successfully registered.",
	})

	FacilitiesRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intermodal_facilities_registered_total",
		Help: "Total number of facilities successfully registered.",
	})

	HandoffsInitiatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intermodal_handoffs_initiated_total",
		Help: "Total number of possession transfers successfully initiated.",
	})

	HandoffsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intermodal_handoffs_confirmed_total",
		Help: "Total number of possession transfers successfully confirmed.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intermodal_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	CorrelationEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "intermodal_correlation_entries",
		Help: "Current number of live booking-reference correlation entries.",
	})

	ContainerCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "intermodal_container_cache_items",
		Help: "Current number of items in the container cache.",
	})
)
