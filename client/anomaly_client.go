package client

import (
	"context"
	"fmt"
	"time"

	"github.com/Aashish23092/salary-slip-risk/service"
)

// AnomalyClient calls a hosted anomaly model.
type AnomalyClient struct {
	jsonClient
}

var _ service.AnomalyModel = (*AnomalyClient)(nil)

func NewAnomalyClient(endpoint string, timeout time.Duration) *AnomalyClient {
	return &AnomalyClient{jsonClient: newJSONClient(endpoint, timeout)}
}

type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Labels []int `json:"labels"`
}

// Predict returns one +1/-1 label per feature vector.
func (c *AnomalyClient) Predict(ctx context.Context, features [][]float64) ([]int, error) {
	var resp predictResponse
	if err := c.post(ctx, predictRequest{Instances: features}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Labels) != len(features) {
		return nil, fmt.Errorf("anomaly model returned %d labels for %d instances", len(resp.Labels), len(features))
	}
	return resp.Labels, nil
}
