package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpdatesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "live_coverage_updates_published_total",
		Help: "Updates published across all coverages, including question answers.",
	})

	UpdatesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "live_coverage_updates_deleted_total",
		Help: "Updates removed by an editor or admin.",
	})

	QuestionsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "live_coverage_questions_submitted_total",
		Help: "Audience questions received.",
	})

	QuestionsModerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "live_coverage_questions_moderated_total",
		Help: "Moderation decisions by resulting status.",
	}, []string{"status"})

	QuestionsAnswered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "live_coverage_questions_answered_total",
		Help: "Approved questions promoted to a published answer.",
	})

	PollFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "live_coverage_poll_fetches_total",
		Help: "Client poll fetches by outcome.",
	}, []string{"result"})
)
