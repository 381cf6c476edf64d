package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking intake flow.
type BookingMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	emailsTotal     *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "requests_total",
			Help:      "Total booking requests by terminal outcome",
		}, []string{"outcome"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "request_duration_seconds",
			Help:      "Latency of booking pipeline processing",
			Buckets:   prometheus.DefBuckets,
		}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "confirmation_emails_total",
			Help:      "Total confirmation email sends",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.emailsTotal)
	return m
}

func (m *BookingMetrics) ObserveRequest(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(outcome).Inc()
	m.requestDuration.Observe(seconds)
}

func (m *BookingMetrics) ObserveEmail(status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(status).Inc()
}
