package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pemira_registrations_total",
		Help: "Registration attempts by outcome.",
	}, []string{"outcome"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pemira_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	ballotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pemira_ballots_total",
		Help: "Ballots recorded by candidate.",
	}, []string{"candidate"})

	verificationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pemira_verification_duration_seconds",
		Help:    "Time spent in document and face verification.",
		Buckets: prometheus.DefBuckets,
	}, []string{"check"})
)

const (
	outcomeOK         = "ok"
	outcomeIncomplete = "incomplete"
	outcomeRejected   = "rejected"
	outcomeDuplicate  = "duplicate"
	outcomeError      = "error"
)
