package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "bowling_tracker"

type Metrics struct {
	GamesSaved       *prometheus.CounterVec
	GamesImported    prometheus.Counter
	GamesDeleted     prometheus.Counter
	TransformFailure prometheus.Counter
	InvalidThrows    prometheus.Counter
	GameScores       prometheus.Histogram
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_saved_total",
			Help:      "Games persisted, labelled by kind (league, practice, perfect, clean).",
		}, []string{"kind"}),
		GamesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_imported_total",
			Help:      "Games persisted through bulk import.",
		}),
		GamesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_deleted_total",
			Help:      "Games removed.",
		}),
		TransformFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "game_transform_failures_total",
			Help:      "Games rejected while being assembled.",
		}),
		InvalidThrows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_throws_total",
			Help:      "Throw tokens or frames rejected as invalid input.",
		}),
		GameScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "game_total_score",
			Help:      "Distribution of saved game totals.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}),
	}

	reg.MustRegister(m.GamesSaved, m.GamesImported, m.GamesDeleted, m.TransformFailure, m.InvalidThrows, m.GameScores)
	return m
}
