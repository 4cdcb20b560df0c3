package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

var (
	CheckoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopping",
			Name:      "checkout_total",
			Help:      "Number of checkout attempts partitioned by result.",
		},
		[]string{"result"},
	)

	CartMutationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopping",
			Name:      "cart_mutation_total",
			Help:      "Number of cart mutations partitioned by operation and result.",
		},
		[]string{"operation", "result"},
	)
)

func Result(err error) string {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}
