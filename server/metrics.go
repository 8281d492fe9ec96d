package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dialoguesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sofa",
		Name:      "dialogues_started_total",
		Help:      "Dialogue runs started.",
	})
	dialoguesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sofa",
		Name:      "dialogues_completed_total",
		Help:      "Dialogue runs that reached the terminal success state.",
	})
	dialoguesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sofa",
		Name:      "dialogues_failed_total",
		Help:      "Dialogue runs that ended in a pipeline failure.",
	})
	topicsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sofa",
		Name:      "topics_rejected_total",
		Help:      "Topics rejected by the moderation gate.",
	})
	stageCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sofa",
		Name:      "stage_completions_total",
		Help:      "Completed dialogue stages by stage name.",
	}, []string{"stage"})
	dialogueDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sofa",
		Name:      "dialogue_duration_seconds",
		Help:      "Wall-clock duration of successful dialogue runs.",
		Buckets:   []float64{5, 15, 30, 60, 120, 180, 300, 600},
	})
)
