package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/Aashish23092/salary-slip-risk/logging"
	"github.com/Aashish23092/salary-slip-risk/metrics"
)

// minEmbeddedText is the number of non-space characters below which a PDF
// is treated as scanned.
const minEmbeddedText = 20

const ocrCollaborator = "ocr"

// OCREngine recognizes text in an encoded image.
type OCREngine interface {
	ExtractTextFromBytes(ctx context.Context, data []byte) (string, error)
}

// minUsefulOCR is the shortest trimmed text an OCR engine must return before
// the next engine in a chain is skipped.
const minUsefulOCR = 10

type ocrChain []OCREngine

// ChainOCR tries each engine in order and keeps the first useful text. When
// none is useful, the longest text wins; the last error is returned only if
// every engine failed.
func ChainOCR(engines ...OCREngine) OCREngine {
	chain := ocrChain{}
	for _, e := range engines {
		if e != nil {
			chain = append(chain, e)
		}
	}
	return chain
}

func (c ocrChain) ExtractTextFromBytes(ctx context.Context, data []byte) (string, error) {
	if len(c) == 0 {
		return "", fmt.Errorf("no OCR engine configured")
	}

	var best string
	var lastErr error
	succeeded := false
	for _, engine := range c {
		text, err := engine.ExtractTextFromBytes(ctx, data)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		succeeded = true
		if len(strings.TrimSpace(text)) >= minUsefulOCR {
			return text, nil
		}
		if len(text) > len(best) {
			best = text
		}
	}
	if !succeeded {
		return "", lastErr
	}
	return best, nil
}

// DocumentReader turns an uploaded file into plain text. OCR trouble is
// reported as an empty result, never as an error.
type DocumentReader struct {
	ocr     OCREngine
	pdf     PDFProcessor
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewDocumentReader(ocr OCREngine, pdf PDFProcessor, logger *slog.Logger, m *metrics.Metrics) *DocumentReader {
	if pdf == nil {
		pdf = NewPDFProcessor()
	}
	return &DocumentReader{
		ocr:     ocr,
		pdf:     pdf,
		logger:  logging.Or(logger, "reader"),
		metrics: m,
	}
}

// ReadText returns the text of the document. It fails only for file types
// it cannot read or a cancelled context.
func (r *DocumentReader) ReadText(ctx context.Context, filename string, data []byte, password string) (string, error) {
	if !dto.IsSupportedFile(filename) {
		return "", fmt.Errorf("%w: %q", dto.ErrUnsupportedFormat, filepath.Ext(filename))
	}

	start := time.Now()
	defer func() { r.metrics.ObserveStage("ocr", time.Since(start)) }()

	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return r.readPDF(ctx, filename, data, password)
	}

	text, err := r.recognize(ctx, data)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		r.warn("image OCR failed", filename, err)
		return "", nil
	}
	return text, nil
}

func (r *DocumentReader) readPDF(ctx context.Context, filename string, data []byte, password string) (string, error) {
	text, err := r.pdf.ExtractText(data, password)
	if err != nil {
		r.logger.Warn("PDF text extraction failed", "file", filename, "error", err)
	}
	if nonSpaceLen(text) >= minEmbeddedText {
		return text, nil
	}

	r.logger.Info("PDF has little embedded text, running OCR on page images", "file", filename)
	images, err := r.pdf.ExtractImages(data, password)
	if err != nil || len(images) == 0 {
		r.warn("PDF image extraction failed", filename, err)
		return "", nil
	}

	var combined strings.Builder
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		encoded, err := encodePNG(img)
		if err != nil {
			r.logger.Warn("failed to encode page image", "file", filename, "page", i+1, "error", err)
			continue
		}
		pageText, err := r.recognize(ctx, encoded)
		if err != nil {
			r.warn("OCR failed for a page", filename, err)
			continue
		}
		combined.WriteString(pageText)
		combined.WriteString("\n")
	}
	return combined.String(), nil
}

func (r *DocumentReader) recognize(ctx context.Context, data []byte) (string, error) {
	if r.ocr == nil {
		return "", fmt.Errorf("no OCR engine configured")
	}
	return r.ocr.ExtractTextFromBytes(ctx, data)
}

func (r *DocumentReader) warn(msg, filename string, err error) {
	r.logger.Warn(msg, "file", filename, "error", err)
	r.metrics.IncrementFallback(ocrCollaborator)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nonSpaceLen(s string) int {
	n := 0
	for _, c := range s {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			n++
		}
	}
	return n
}
