package service

import (
	"context"
	"sync"

	"github.com/Aashish23092/salary-slip-risk/dto"
)

// EntityRecognizer labels spans of slip text. The trained salary-slip
// overlay emits SALARY, NET_PAY and EMPLOYEE_NAME; a general recognizer
// emits PERSON and ORG.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]dto.EntitySpan, error)
}

// AnomalyModel classifies feature vectors [basic, hra, special, deductions],
// returning +1 (normal) or -1 (anomalous) per vector. The feature order is
// fixed by how the model was trained.
type AnomalyModel interface {
	Predict(ctx context.Context, features [][]float64) ([]int, error)
}

// NoopRecognizer stands in for an absent entity model.
type NoopRecognizer struct{}

func (NoopRecognizer) Recognize(context.Context, string) ([]dto.EntitySpan, error) {
	return nil, nil
}

// Labels returned by AnomalyModel.Predict.
const (
	LabelNormal  = 1
	LabelOutlier = -1
)

type serializedModel struct {
	mu    sync.Mutex
	model AnomalyModel
}

// SerializeModel wraps m so that only one Predict call runs at a time. Use
// it for model runtimes that are not safe for concurrent inference.
func SerializeModel(m AnomalyModel) AnomalyModel {
	if m == nil {
		return nil
	}
	return &serializedModel{model: m}
}

func (s *serializedModel) Predict(ctx context.Context, features [][]float64) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Predict(ctx, features)
}

type serializedRecognizer struct {
	mu  sync.Mutex
	rec EntityRecognizer
}

// SerializeRecognizer is SerializeModel for entity recognizers.
func SerializeRecognizer(r EntityRecognizer) EntityRecognizer {
	if r == nil {
		return nil
	}
	return &serializedRecognizer{rec: r}
}

func (s *serializedRecognizer) Recognize(ctx context.Context, text string) ([]dto.EntitySpan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Recognize(ctx, text)
}
