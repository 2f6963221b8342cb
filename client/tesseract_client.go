package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otiai10/gosseract/v2"

	"github.com/Aashish23092/salary-slip-risk/logging"
)

// TesseractClient runs Tesseract OCR. Each call gets its own gosseract
// client, so one TesseractClient may be shared across goroutines.
type TesseractClient struct {
	dataPath  string
	languages []string
	logger    *slog.Logger
}

func NewTesseractClient(dataPath string, logger *slog.Logger) *TesseractClient {
	return &TesseractClient{
		dataPath:  dataPath,
		languages: []string{"eng"},
		logger:    logging.Or(logger, "tesseract"),
	}
}

// ExtractTextFromBytes OCRs an encoded image (PNG, JPEG, TIFF, BMP). The
// mean word confidence is logged at debug level.
func (tc *TesseractClient) ExtractTextFromBytes(ctx context.Context, data []byte) (string, error) {
	text, quality, err := tc.run(ctx, func(c *gosseract.Client) error { return c.SetImageFromBytes(data) })
	if err != nil {
		return "", err
	}
	tc.logger.Debug("tesseract page recognized", "chars", len(text), "confidence", quality)
	return text, nil
}

func (tc *TesseractClient) run(ctx context.Context, setImage func(*gosseract.Client) error) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.languages...); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := setImage(client); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// text without a confidence is still usable
		tc.logger.Debug("bounding boxes unavailable", "error", err)
		return text, 0, nil
	}

	var totalConf float64
	for _, box := range boxes {
		totalConf += box.Confidence
	}
	avgConf := 0.0
	if len(boxes) > 0 {
		avgConf = totalConf / float64(len(boxes))
	}
	return text, avgConf, nil
}
