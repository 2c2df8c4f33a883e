// Package metrics holds Prometheus instruments that are used across Jeevan.
// All collectors are registered with the global registry, so mounting
// promhttp.Handler() on /metrics is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for FormSubmissionsTotal.
const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeMalformed = "malformed"
)

var (
	FormSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jeevan_form_submissions_total",
			Help: "Form submissions by form and outcome.",
		}, []string{"form", "outcome"})

	FormRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jeevan_form_rejections_total",
			Help: "Rejected submissions by form and first failing field.",
		}, []string{"form", "field"})

	AlertsShownTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jeevan_alerts_shown_total",
			Help: "Alert banners queued for visitors, by type.",
		}, []string{"type"})

	PlaceholderHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jeevan_placeholder_hits_total",
			Help: "Requests to features that are announced but not built yet.",
		}, []string{"feature"})

	StatsFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jeevan_stats_fallback_total",
			Help: "Times the counter stats fell back to built-in defaults.",
		})
)

func init() {
	prometheus.MustRegister(
		FormSubmissionsTotal,
		FormRejectionsTotal,
		AlertsShownTotal,
		PlaceholderHitsTotal,
		StatsFallbackTotal,
	)
}
