package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rankingsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "popmatch_rankings_computed_total",
		Help: "Number of vendor rankings computed from scratch.",
	})

	rankingCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "popmatch_ranking_cache_hits_total",
		Help: "Number of ranking requests served from the cache.",
	})

	dateParseOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "popmatch_date_parse_total",
		Help: "Date normalization attempts by recognizer; rule=\"none\" counts unrecognized inputs.",
	}, []string{"rule"})
)

func recordParseOutcome(rule string) {
	if rule == "" {
		rule = "none"
	}
	dateParseOutcomes.WithLabelValues(rule).Inc()
}
