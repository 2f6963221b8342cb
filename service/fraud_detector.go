package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/Aashish23092/salary-slip-risk/logging"
	"github.com/Aashish23092/salary-slip-risk/metrics"
)

// FeatureVector is [basic, hra, special, deductions], the order the anomaly
// model was trained on.
type FeatureVector [FeatureCount]float64

// FeaturesFromRecord builds the model input. Special allowances are whatever
// part of total earnings basic and HRA do not account for.
func FeaturesFromRecord(rec dto.ExtractedRecord) FeatureVector {
	special := max(0, rec.TotalEarnings-(rec.BasicSalary+rec.HRA))
	return FeatureVector{rec.BasicSalary, rec.HRA, special, rec.TotalDeductions}
}

const (
	reasonZeroTax     = "high income with zero tax/deductions"
	reasonNegative    = "negative values detected in salary components"
	reasonLowBasic    = "extremely low basic salary"
	reasonStatistical = "statistical outlier (unusual combination of values)"

	highIncomeBasic     = 100000.0
	implausibleLowPay   = 1000.0
	anomalyCollaborator = "anomaly_model"
)

// ExplainAnomaly names the most likely reason a vector was flagged.
func ExplainAnomaly(f FeatureVector) string {
	basic, deductions := f[0], f[3]
	switch {
	case basic > highIncomeBasic && deductions == 0:
		return reasonZeroTax
	case f[0] < 0 || f[1] < 0 || f[2] < 0 || f[3] < 0:
		return reasonNegative
	case basic > 0 && basic < implausibleLowPay:
		return reasonLowBasic
	default:
		return reasonStatistical
	}
}

type FraudDetector struct {
	model   *ModelHandle[AnomalyModel]
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewFraudDetector returns a detector backed by model. A nil handle, or one
// that yields a nil model, makes every verdict Normal.
func NewFraudDetector(model *ModelHandle[AnomalyModel], logger *slog.Logger, m *metrics.Metrics) *FraudDetector {
	return &FraudDetector{
		model:   model,
		logger:  logging.Or(logger, "fraud"),
		metrics: m,
	}
}

// CheckRecord classifies the salary composition of rec.
func (d *FraudDetector) CheckRecord(ctx context.Context, rec dto.ExtractedRecord) dto.FraudVerdict {
	return d.CheckFeatures(ctx, FeaturesFromRecord(rec))
}

// CheckFeatures classifies one feature vector. It never fails: any problem
// with the model yields Normal.
func (d *FraudDetector) CheckFeatures(ctx context.Context, f FeatureVector) dto.FraudVerdict {
	start := time.Now()
	defer func() { d.metrics.ObserveStage("fraud", time.Since(start)) }()

	verdict := d.classify(ctx, f)
	d.metrics.IncrementVerdict(string(verdict.Status))
	return verdict
}

func (d *FraudDetector) classify(ctx context.Context, f FeatureVector) dto.FraudVerdict {
	normal := dto.FraudVerdict{Status: dto.FraudNormal}

	model, err := d.model.Get()
	if err != nil {
		d.fallback("anomaly model failed to load", err)
		return normal
	}
	if model == nil {
		return normal
	}

	labels, err := model.Predict(ctx, [][]float64{f[:]})
	if err != nil {
		d.fallback("anomaly model prediction failed", err)
		return normal
	}
	if len(labels) != 1 {
		d.logger.Warn("anomaly model returned unexpected label count", "labels", len(labels))
		d.metrics.IncrementFallback(anomalyCollaborator)
		return normal
	}

	if labels[0] == LabelOutlier {
		return dto.FraudVerdict{Status: dto.FraudAnomalyDetected, Reason: ExplainAnomaly(f)}
	}
	return normal
}

func (d *FraudDetector) fallback(msg string, err error) {
	d.logger.Warn(msg, "error", err)
	d.metrics.IncrementFallback(anomalyCollaborator)
}
