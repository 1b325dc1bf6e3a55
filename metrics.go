package dnskit

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dnsscience/dnskit/internal/metrics"
)

// Collectors returns the prometheus collectors this library maintains:
// query counts/latency by transport, and DNSSEC validation outcomes. The
// library never registers these itself (see internal/metrics); callers that
// want them exposed should register them with their own registry, e.g.:
//
//	for _, c := range dnskit.Collectors() {
//	    prometheus.MustRegister(c)
//	}
func Collectors() []prometheus.Collector {
	return metrics.All()
}
