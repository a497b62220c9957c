package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts signup submissions by outcome
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nursemoves",
		Subsystem: "signup",
		Name:      "submissions_total",
		Help:      "Beta signup submissions by outcome.",
	}, []string{"outcome"})

	// SubmissionDuration observes the lookup/insert/email chain
	SubmissionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nursemoves",
		Subsystem: "signup",
		Name:      "duration_seconds",
		Help:      "Time spent on the duplicate check, insert and confirmation email.",
		Buckets:   prometheus.DefBuckets,
	})

	// NotificationFailures counts confirmation deliveries that failed
	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nursemoves",
		Subsystem: "signup",
		Name:      "notification_failures_total",
		Help:      "Confirmation deliveries that failed, by channel.",
	}, []string{"channel"})
)
