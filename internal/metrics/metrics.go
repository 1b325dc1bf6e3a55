// Package metrics holds the library's prometheus collectors. They are
// created eagerly but never self-registered into prometheus.DefaultRegisterer:
// a library embedded in someone else's process must let the caller choose
// the registry (dnskit.Collectors() + caller-side Register), or two
// libraries sharing a process would panic on duplicate registration.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnskit_queries_total",
			Help: "Total DNS queries executed, labeled by transport and outcome.",
		},
		[]string{"transport", "outcome"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dnskit_query_duration_seconds",
			Help:    "Query latency by transport.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transport"},
	)

	DNSSECValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnskit_dnssec_validations_total",
			Help: "DNSSEC authentication outcomes, labeled by signature and chain result.",
		},
		[]string{"signature_verified", "chain_trusted"},
	)
)

// All returns every collector this package defines, for callers that want
// to register them in one call.
func All() []prometheus.Collector {
	return []prometheus.Collector{QueriesTotal, QueryDuration, DNSSECValidations}
}

func ObserveQuery(transport, outcome string, seconds float64) {
	QueriesTotal.WithLabelValues(transport, outcome).Inc()
	QueryDuration.WithLabelValues(transport).Observe(seconds)
}

func ObserveDNSSEC(signatureVerified, chainTrusted bool) {
	DNSSECValidations.WithLabelValues(boolLabel(signatureVerified), boolLabel(chainTrusted)).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
