package adapthttp

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motors_http_requests_total",
		Help: "HTTP requests served, by status class.",
	}, []string{"class"})

	// Login outcomes carry no identity labels, only success/failure.
	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motors_logins_total",
		Help: "Login attempts, by outcome.",
	}, []string{"outcome"})
)

func observeRequest(status int) {
	requestsTotal.WithLabelValues(fmt.Sprintf("%dxx", status/100)).Inc()
}

func observeLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	loginsTotal.WithLabelValues(outcome).Inc()
}
