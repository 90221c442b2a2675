package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	rosterFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hr_dashboard",
		Subsystem: "roster",
		Name:      "fetches_total",
		Help:      "Total number of roster page fetches broken down by outcome.",
	}, []string{"outcome"})

	bookmarkMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hr_dashboard",
		Subsystem: "bookmarks",
		Name:      "mutations_total",
		Help:      "Total number of effective bookmark mutations broken down by operation.",
	}, []string{"op"})

	bookmarkReadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hr_dashboard",
		Subsystem: "bookmarks",
		Name:      "read_failures_total",
		Help:      "Total number of unreadable or corrupt bookmark slot reads treated as empty.",
	})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hr_dashboard",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts broken down by outcome.",
	}, []string{"outcome"})

	notifierDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hr_dashboard",
		Subsystem: "notifier",
		Name:      "deliveries_total",
		Help:      "Total number of change notifications delivered to subscribers broken down by result.",
	}, []string{"result"})
)

func recordLogin(ok bool) {
	outcome := outcomeError
	if ok {
		outcome = outcomeSuccess
	}
	loginAttempts.WithLabelValues(outcome).Inc()
}
