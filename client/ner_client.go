package client

import (
	"context"
	"time"

	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/Aashish23092/salary-slip-risk/service"
)

// EntityClient calls a named-entity recognition service. The same client
// serves the trained salary-slip model and the general recognizer; only the
// endpoint differs.
type EntityClient struct {
	jsonClient
}

var _ service.EntityRecognizer = (*EntityClient)(nil)

func NewEntityClient(endpoint string, timeout time.Duration) *EntityClient {
	return &EntityClient{jsonClient: newJSONClient(endpoint, timeout)}
}

type recognizeRequest struct {
	Text string `json:"text"`
}

type recognizeResponse struct {
	Entities []dto.EntitySpan `json:"entities"`
}

// Recognize returns the labelled spans found in text.
func (c *EntityClient) Recognize(ctx context.Context, text string) ([]dto.EntitySpan, error) {
	var resp recognizeResponse
	if err := c.post(ctx, recognizeRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	return resp.Entities, nil
}
