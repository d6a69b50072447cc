package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	settlementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlements_total",
			Help: "Attempt settlements by outcome (approved, rejected, noop, duplicate)",
		},
		[]string{"outcome"},
	)
	wheelSpinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wheel_spins_total",
			Help: "Daily wheel spins by prize kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(settlementsTotal)
	prometheus.MustRegister(wheelSpinsTotal)
}
