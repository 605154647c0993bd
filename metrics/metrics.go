// Package metrics exposes Prometheus counters for game activity.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "skullking"

type Metrics struct {
	GamesCreated     prometheus.Counter
	RoundsStarted    prometheus.Counter
	BidsSubmitted    prometheus.Counter
	ResultsSubmitted prometheus.Counter
	GamesCompleted   prometheus.Counter
	StatsUpdates     *prometheus.CounterVec
	ArchiveUploads   *prometheus.CounterVec
}

// New registers the counters on reg. A nil registerer leaves them unregistered,
// which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_created_total",
			Help:      "Number of games created.",
		}),
		RoundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Number of rounds started (repeated starts are not counted).",
		}),
		BidsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_submitted_total",
			Help:      "Number of accepted bid submissions.",
		}),
		ResultsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_submitted_total",
			Help:      "Number of accepted result submissions.",
		}),
		GamesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Number of games that reached the final round.",
		}),
		StatsUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_updates_total",
			Help:      "Player stat record updates after completed games.",
		}, []string{"outcome"}),
		ArchiveUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_uploads_total",
			Help:      "Completed game archive uploads.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.GamesCreated,
			m.RoundsStarted,
			m.BidsSubmitted,
			m.ResultsSubmitted,
			m.GamesCompleted,
			m.StatsUpdates,
			m.ArchiveUploads,
		)
	}
	return m
}

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
