package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the slip analysis pipeline.
type Metrics struct {
	// Documents analysed by eligibility outcome
	DocumentsAnalyzed *prometheus.CounterVec

	// Fraud verdicts by status
	FraudVerdicts *prometheus.CounterVec

	// Degraded-mode fallbacks by collaborator ("entity_overlay", "entity_recognizer", "anomaly_model", "ocr")
	CollaboratorFallbacks *prometheus.CounterVec

	// Per-stage latency
	StageLatency *prometheus.HistogramVec
}

// New creates a Metrics instance registered on reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		DocumentsAnalyzed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "slipscore_documents_analyzed_total",
			Help: "Total salary slips analysed by eligibility outcome",
		}, []string{"eligibility"}),

		FraudVerdicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "slipscore_fraud_verdicts_total",
			Help: "Total fraud verdicts by status",
		}, []string{"status"}),

		CollaboratorFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "slipscore_collaborator_fallbacks_total",
			Help: "Times the pipeline degraded because a collaborator was missing or failed",
		}, []string{"collaborator"}),

		StageLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "slipscore_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"stage"}),
	}
}

// IncrementDocument records one analysed document.
func (m *Metrics) IncrementDocument(eligibility string) {
	if m != nil {
		m.DocumentsAnalyzed.WithLabelValues(eligibility).Inc()
	}
}

// IncrementVerdict records a fraud verdict.
func (m *Metrics) IncrementVerdict(status string) {
	if m != nil {
		m.FraudVerdicts.WithLabelValues(status).Inc()
	}
}

// IncrementFallback records a degraded collaborator.
func (m *Metrics) IncrementFallback(collaborator string) {
	if m != nil {
		m.CollaboratorFallbacks.WithLabelValues(collaborator).Inc()
	}
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}
