package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var webhookResults = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "storeapi",
		Name:      "payment_webhook_results_total",
		Help:      "Outcomes of received payment gateway notifications",
	},
	[]string{"result"},
)
