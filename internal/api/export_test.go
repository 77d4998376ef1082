package api

import "github.com/prometheus/client_golang/prometheus"

// RequestsVec exposes the request counter to the external test package
func (m *Metrics) RequestsVec() *prometheus.CounterVec {
	return m.requests
}
