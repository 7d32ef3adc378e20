package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "starmatch_matches_created_total",
		Help: "Matches created, labeled by match type.",
	}, []string{"type"})

	MatchesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "starmatch_matches_accepted_total",
		Help: "Matches that reached mutual interest.",
	})

	MatchesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "starmatch_matches_expired_total",
		Help: "Pending matches expired by the sweeper.",
	})

	TransactionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "starmatch_transactions_total",
		Help: "Ledger entries recorded, labeled by transaction type.",
	}, []string{"type"})
)
