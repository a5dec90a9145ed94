package deal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	dealsCreated prometheus.Counter
	transitions  *prometheus.CounterVec
	codeRetries  prometheus.Counter
}

//nolint:gochecknoglobals // единый набор счётчиков на процесс
var serviceMetrics = metrics{
	dealsCreated: promauto.NewCounter(prometheus.CounterOpts{
		Name: "deals_created_total",
		Help: "Total deals created.",
	}),
	transitions: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deal_transitions_total",
		Help: "Total deal status transitions.",
	}, []string{"to"}),
	codeRetries: promauto.NewCounter(prometheus.CounterOpts{
		Name: "trade_code_retries_total",
		Help: "Trade code regenerations caused by uniqueness conflicts.",
	}),
}
