package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// PaddleClient calls a PaddleOCR serving endpoint
// (e.g. http://paddleocr:8866/predict/ocr_system).
type PaddleClient struct {
	jsonClient
}

func NewPaddleClient(endpoint string, timeout time.Duration) *PaddleClient {
	return &PaddleClient{jsonClient: newJSONClient(endpoint, timeout)}
}

type paddleRequest struct {
	Images []string `json:"images"`
}

type paddleResponse struct {
	Results [][]struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

// ExtractTextFromBytes OCRs one encoded image, one recognized line per
// output line.
func (p *PaddleClient) ExtractTextFromBytes(ctx context.Context, data []byte) (string, error) {
	req := paddleRequest{Images: []string{base64.StdEncoding.EncodeToString(data)}}

	var resp paddleResponse
	if err := p.post(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("paddleocr: %w", err)
	}

	var textBuilder strings.Builder
	if len(resp.Results) > 0 {
		for _, line := range resp.Results[0] {
			textBuilder.WriteString(line.Text)
			textBuilder.WriteString("\n")
		}
	}

	text := textBuilder.String()
	if text == "" {
		return "", fmt.Errorf("paddleocr extracted no text")
	}
	return text, nil
}
