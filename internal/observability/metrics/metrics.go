package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline outcomes reported on the inbound counter.
const (
	OutcomeProcessed = "processed"
	OutcomeDuplicate = "duplicate"
	OutcomeEcho      = "echo"
	OutcomeError     = "error"
)

// WebhookMetrics exposes counters/histograms for the intake pipeline.
type WebhookMetrics struct {
	inboundTotal    *prometheus.CounterVec
	leadUpserts     *prometheus.CounterVec
	outboundTotal   *prometheus.CounterVec
	pipelineLatency *prometheus.HistogramVec
}

func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "webhook",
			Name:      "inbound_total",
			Help:      "Inbound webhook events by pipeline outcome",
		}, []string{"outcome"}),
		leadUpserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "leads",
			Name:      "upserts_total",
			Help:      "Lead upserts by action",
		}, []string{"action"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "webhook",
			Name:      "outbound_total",
			Help:      "Auto-reply sends by status",
		}, []string{"status"}),
		pipelineLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadgate",
			Subsystem: "webhook",
			Name:      "pipeline_latency_seconds",
			Help:      "Latency of post-acknowledgment event processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.leadUpserts, m.outboundTotal, m.pipelineLatency)
	return m
}

func (m *WebhookMetrics) ObserveInbound(outcome string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(outcome).Inc()
}

func (m *WebhookMetrics) ObserveLeadUpsert(action string) {
	if m == nil {
		return
	}
	m.leadUpserts.WithLabelValues(action).Inc()
}

func (m *WebhookMetrics) ObserveOutbound(status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(status).Inc()
}

func (m *WebhookMetrics) ObservePipelineLatency(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.pipelineLatency.WithLabelValues(outcome).Observe(seconds)
}
