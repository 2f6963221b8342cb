package service

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FeatureCount is the width of every vector an AnomalyModel accepts.
const FeatureCount = 4

// EnvelopeModel is an offline summary of the salary distribution the anomaly
// model was trained on: a vector inside the envelope is normal, anything
// outside is an outlier. It serves when no scoring service is configured.
type EnvelopeModel struct {
	// MinBasic is the lowest plausible non-zero basic salary.
	MinBasic float64 `yaml:"minBasic"`
	// MinDeductionRatio and MaxDeductionRatio bound deductions / gross
	// whenever deductions were found.
	MinDeductionRatio float64 `yaml:"minDeductionRatio"`
	MaxDeductionRatio float64 `yaml:"maxDeductionRatio"`
	// MaxGrossWithoutDeductions is the largest gross pay that may carry no
	// deductions at all.
	MaxGrossWithoutDeductions float64 `yaml:"maxGrossWithoutDeductions"`
}

func DefaultEnvelopeModel() *EnvelopeModel {
	return &EnvelopeModel{
		MinBasic:                  1000,
		MinDeductionRatio:         0.05,
		MaxDeductionRatio:         0.45,
		MaxGrossWithoutDeductions: 180000,
	}
}

// LoadEnvelopeModel reads bounds from a YAML file; keys the file omits keep
// their defaults.
func LoadEnvelopeModel(path string) (*EnvelopeModel, error) {
	m := DefaultEnvelopeModel()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("envelope model: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("envelope model: parse %s: %w", path, err)
	}
	if m.MinDeductionRatio > m.MaxDeductionRatio {
		return nil, fmt.Errorf("envelope model: deduction ratio band [%g, %g] is empty", m.MinDeductionRatio, m.MaxDeductionRatio)
	}
	return m, nil
}

func (m *EnvelopeModel) Predict(_ context.Context, features [][]float64) ([]int, error) {
	labels := make([]int, 0, len(features))
	for i, f := range features {
		if len(f) != FeatureCount {
			return nil, fmt.Errorf("envelope model: vector %d has %d features, want %d", i, len(f), FeatureCount)
		}
		labels = append(labels, m.label(f))
	}
	return labels, nil
}

func (m *EnvelopeModel) label(f []float64) int {
	basic, hra, special, deductions := f[0], f[1], f[2], f[3]

	if basic == 0 && hra == 0 && special == 0 && deductions == 0 {
		return LabelNormal
	}
	if basic < 0 || hra < 0 || special < 0 || deductions < 0 {
		return LabelOutlier
	}
	if basic > 0 && basic < m.MinBasic {
		return LabelOutlier
	}

	gross := basic + hra + special
	if deductions == 0 {
		if gross > m.MaxGrossWithoutDeductions {
			return LabelOutlier
		}
		return LabelNormal
	}
	if gross == 0 {
		return LabelOutlier
	}

	ratio := deductions / gross
	if ratio < m.MinDeductionRatio || ratio > m.MaxDeductionRatio {
		return LabelOutlier
	}
	return LabelNormal
}
