package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "meriter_votes_total",
	Help: "Votes recorded in the ledger, by direction and merit source.",
}, []string{"direction", "source"})

var WithdrawalsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "meriter_withdrawals_total",
	Help: "Publication withdrawals recorded in the ledger.",
})

var PublicationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "meriter_publications_total",
	Help: "Publications created.",
})
