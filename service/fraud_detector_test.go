package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/Aashish23092/salary-slip-risk/metrics"
)

type stubModel struct {
	labels []int
	err    error
	calls  int
}

func (m *stubModel) Predict(_ context.Context, features [][]float64) ([]int, error) {
	m.calls++
	return m.labels, m.err
}

func envelopeDetector() *FraudDetector {
	return NewFraudDetector(StaticHandle[AnomalyModel](DefaultEnvelopeModel()), nil, nil)
}

func TestFraudDetector_HighIncomeZeroTax(t *testing.T) {
	verdict := envelopeDetector().CheckFeatures(context.Background(), FeatureVector{200000, 80000, 40000, 0})

	assert.Equal(t, dto.FraudAnomalyDetected, verdict.Status)
	assert.Equal(t, "high income with zero tax/deductions", verdict.Reason)
}

func TestFraudDetector_PlausiblePayroll(t *testing.T) {
	verdict := envelopeDetector().CheckFeatures(context.Background(), FeatureVector{50000, 20000, 10000, 8000})

	assert.Equal(t, dto.FraudVerdict{Status: dto.FraudNormal}, verdict)
}

func TestFraudDetector_CheckRecord(t *testing.T) {
	rec := dto.NewExtractedRecord()
	rec.BasicSalary = 16000
	rec.TotalEarnings = 25500
	rec.TotalDeductions = 1880

	assert.Equal(t, FeatureVector{16000, 0, 9500, 1880}, FeaturesFromRecord(rec))
	assert.Equal(t, dto.FraudNormal, envelopeDetector().CheckRecord(context.Background(), rec).Status)
}

func TestFeaturesFromRecord_SpecialNeverNegative(t *testing.T) {
	rec := dto.NewExtractedRecord()
	rec.BasicSalary = 30000
	rec.HRA = 12000
	rec.TotalEarnings = 40000

	assert.Zero(t, FeaturesFromRecord(rec)[2])
}

func TestExplainAnomaly(t *testing.T) {
	tests := []struct {
		f    FeatureVector
		want string
	}{
		{FeatureVector{150000, 0, 0, 0}, "high income with zero tax/deductions"},
		{FeatureVector{150000, -1, 0, 0}, "high income with zero tax/deductions"},
		{FeatureVector{30000, -5000, 0, 2000}, "negative values detected in salary components"},
		{FeatureVector{500, 0, 0, 0}, "extremely low basic salary"},
		{FeatureVector{30000, 0, 0, 29000}, "statistical outlier (unusual combination of values)"},
		{FeatureVector{0, 0, 0, 0}, "statistical outlier (unusual combination of values)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExplainAnomaly(tt.f), "%v", tt.f)
	}
}

func TestFraudDetector_FailsOpen(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	ctx := context.Background()
	suspicious := FeatureVector{200000, 80000, 40000, 0}

	tests := []struct {
		name   string
		handle *ModelHandle[AnomalyModel]
	}{
		{"nil handle", nil},
		{"nil model", StaticHandle[AnomalyModel](nil)},
		{"load error", NewModelHandle(func() (AnomalyModel, error) { return nil, errors.New("model file missing") })},
		{"predict error", StaticHandle[AnomalyModel](&stubModel{err: errors.New("connection refused")})},
		{"label count", StaticHandle[AnomalyModel](&stubModel{labels: []int{}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := NewFraudDetector(tt.handle, nil, m).CheckFeatures(ctx, suspicious)
			assert.Equal(t, dto.FraudNormal, verdict.Status)
		})
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.CollaboratorFallbacks.WithLabelValues("anomaly_model")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.FraudVerdicts.WithLabelValues("Normal")))
}

func TestFraudDetector_UsesModelLabel(t *testing.T) {
	model := &stubModel{labels: []int{LabelOutlier}}
	d := NewFraudDetector(StaticHandle[AnomalyModel](model), nil, nil)

	verdict := d.CheckFeatures(context.Background(), FeatureVector{30000, 0, 0, 29000})

	assert.Equal(t, dto.FraudAnomalyDetected, verdict.Status)
	assert.Equal(t, "statistical outlier (unusual combination of values)", verdict.Reason)
	assert.Equal(t, 1, model.calls)
}

func TestEnvelopeModel_Predict(t *testing.T) {
	m := DefaultEnvelopeModel()

	labels, err := m.Predict(context.Background(), [][]float64{
		{0, 0, 0, 0},
		{50000, 20000, 10000, 8000},
		{200000, 80000, 40000, 0},
		{30000, -1, 0, 3000},
		{100, 100, 100, 100},
		{30000, 10000, 5000, 30000},
		{40000, 0, 0, 0},
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, -1, -1, -1, -1, 1}, labels)
}

func TestEnvelopeModel_RejectsWrongWidth(t *testing.T) {
	_, err := DefaultEnvelopeModel().Predict(context.Background(), [][]float64{{1, 2, 3}})

	assert.Error(t, err)
}

func TestLoadEnvelopeModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envelope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("minBasic: 5000\nmaxDeductionRatio: 0.3\n"), 0o600))

	m, err := LoadEnvelopeModel(path)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, m.MinBasic)
	assert.Equal(t, 0.3, m.MaxDeductionRatio)
	assert.Equal(t, 0.05, m.MinDeductionRatio)

	require.NoError(t, os.WriteFile(path, []byte("minDeductionRatio: 0.5\nmaxDeductionRatio: 0.2\n"), 0o600))
	_, err = LoadEnvelopeModel(path)
	assert.Error(t, err)

	_, err = LoadEnvelopeModel(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
