package pool

import "github.com/prometheus/client_golang/prometheus"

var (
	tasksEnqueuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "asrd",
			Subsystem: "pool",
			Name:      "tasks_enqueued_total",
			Help:      "Total tasks admitted to the queue",
		},
	)

	tasksCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asrd",
			Subsystem: "pool",
			Name:      "tasks_completed_total",
			Help:      "Total tasks resolved, by outcome",
		},
		[]string{"outcome"},
	)

	taskRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "asrd",
			Subsystem: "pool",
			Name:      "task_retries_total",
			Help:      "Total task re-dispatches after an instance failure",
		},
	)

	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "asrd",
			Subsystem: "pool",
			Name:      "queue_depth",
			Help:      "Tasks currently waiting for dispatch",
		},
	)

	instancesByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "asrd",
			Subsystem: "pool",
			Name:      "instances",
			Help:      "Instances per lifecycle status",
		},
		[]string{"status"},
	)

	inferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "asrd",
			Subsystem: "pool",
			Name:      "inference_duration_seconds",
			Help:      "Duration of engine transcription calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		tasksEnqueuedTotal,
		tasksCompletedTotal,
		taskRetriesTotal,
		queueDepth,
		instancesByStatus,
		inferenceDuration,
	)
}

// updateInstanceGauges refreshes the per-status instance gauge. Callers must
// hold the pool mutex.
func updateInstanceGauges(instances []*Instance) {
	counts := make(map[Status]int, len(allStatuses))
	for _, inst := range instances {
		counts[inst.Status]++
	}
	for _, s := range allStatuses {
		instancesByStatus.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
}
