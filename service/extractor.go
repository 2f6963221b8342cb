package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/Aashish23092/salary-slip-risk/logging"
	"github.com/Aashish23092/salary-slip-risk/metrics"
	"github.com/Aashish23092/salary-slip-risk/utils"
)

const (
	overlayCollaborator    = "entity_overlay"
	recognizerCollaborator = "entity_recognizer"
)

// FieldExtractor turns raw slip text into an ExtractedRecord. Regex rules
// always run; the entity recognizers refine names and organizations, and
// the trained overlay may override the headline money fields.
type FieldExtractor struct {
	parser     *utils.SlipParser
	recognizer EntityRecognizer
	overlay    EntityRecognizer
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type ExtractorOption func(*FieldExtractor)

// WithRecognizer sets the general-purpose recognizer (PERSON, ORG).
func WithRecognizer(r EntityRecognizer) ExtractorOption {
	return func(e *FieldExtractor) {
		if r != nil {
			e.recognizer = r
		}
	}
}

// WithOverlay sets the salary-slip model (SALARY, NET_PAY, EMPLOYEE_NAME).
func WithOverlay(r EntityRecognizer) ExtractorOption {
	return func(e *FieldExtractor) {
		if r != nil {
			e.overlay = r
		}
	}
}

func WithExtractorLogger(l *slog.Logger) ExtractorOption {
	return func(e *FieldExtractor) { e.logger = l }
}

func WithExtractorMetrics(m *metrics.Metrics) ExtractorOption {
	return func(e *FieldExtractor) { e.metrics = m }
}

func NewFieldExtractor(opts utils.KeyValueOptions, options ...ExtractorOption) *FieldExtractor {
	e := &FieldExtractor{
		parser:     utils.NewSlipParser(opts),
		recognizer: NoopRecognizer{},
		overlay:    NoopRecognizer{},
	}
	for _, opt := range options {
		opt(e)
	}
	e.logger = logging.Or(e.logger, "extractor")
	return e
}

// Extract never fails. Recognizer errors are logged and the record is built
// from whatever the remaining sources found.
func (e *FieldExtractor) Extract(ctx context.Context, text string) dto.ExtractedRecord {
	start := time.Now()
	defer func() { e.metrics.ObserveStage("extract", time.Since(start)) }()

	rec := e.parser.Parse(text)

	general := e.recognize(ctx, e.recognizer, recognizerCollaborator, text)
	if persons := spanTexts(general, dto.LabelPerson); len(persons) > 0 {
		rec.Names = persons
	}
	rec.Organizations = mergeCandidates(spanTexts(general, dto.LabelOrg))

	e.applyOverlay(&rec, e.recognize(ctx, e.overlay, overlayCollaborator, text))
	return rec
}

func (e *FieldExtractor) recognize(ctx context.Context, r EntityRecognizer, name, text string) []dto.EntitySpan {
	spans, err := r.Recognize(ctx, text)
	if err != nil {
		e.logger.Warn("entity recognition failed, continuing without it", "collaborator", name, "error", err)
		e.metrics.IncrementFallback(name)
		return nil
	}
	return spans
}

// applyOverlay lets the trained model override earnings and net pay (first
// span that parses wins) and puts its employee names ahead of the rest.
func (e *FieldExtractor) applyOverlay(rec *dto.ExtractedRecord, spans []dto.EntitySpan) {
	if len(spans) == 0 {
		return
	}

	if v, ok := firstSpanAmount(spans, dto.LabelSalary); ok {
		rec.TotalEarnings = v
	}
	if v, ok := firstSpanAmount(spans, dto.LabelNetPay); ok {
		rec.NetPay = v
	}
	rec.Names = mergeCandidates(spanTexts(spans, dto.LabelEmployeeName), rec.Names)
}

func firstSpanAmount(spans []dto.EntitySpan, label string) (float64, bool) {
	for _, s := range spans {
		if s.Label != label {
			continue
		}
		if v, ok := utils.CleanAmount(s.Text); ok && v > 0 {
			return v, true
		}
	}
	return 0, false
}

func spanTexts(spans []dto.EntitySpan, label string) []string {
	out := []string{}
	for _, s := range spans {
		if s.Label == label {
			out = append(out, s.Text)
		}
	}
	return out
}

// mergeCandidates concatenates candidate lists in priority order, dropping
// blanks and entries that differ only in case, spaces or dots.
func mergeCandidates(lists ...[]string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, list := range lists {
		for _, c := range list {
			c = strings.TrimSpace(c)
			key := utils.NormalizeString(c)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}
