package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/Aashish23092/salary-slip-risk/logging"
	"github.com/Aashish23092/salary-slip-risk/metrics"
	"github.com/Aashish23092/salary-slip-risk/utils"
)

// TextSource is the source recorded for text submitted without a file.
const TextSource = "text"

// SlipService runs the salary slip pipeline: OCR, extraction,
// reconciliation, salary inference, validation, fraud check and scoring.
type SlipService struct {
	reader    *DocumentReader
	extractor *FieldExtractor
	fraud     *FraudDetector
	policy    RiskPolicy

	maxConcurrency int
	logger         *slog.Logger
	metrics        *metrics.Metrics
	now            func() time.Time
	newID          func() string
}

type ServiceOption func(*SlipService)

func WithRiskPolicy(p RiskPolicy) ServiceOption {
	return func(s *SlipService) { s.policy = p }
}

// WithMaxConcurrency bounds how many documents of a batch run at once.
func WithMaxConcurrency(n int) ServiceOption {
	return func(s *SlipService) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *SlipService) { s.logger = l }
}

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *SlipService) { s.metrics = m }
}

// WithClock replaces time.Now for processed_at stamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *SlipService) { s.now = now }
}

func NewSlipService(reader *DocumentReader, extractor *FieldExtractor, fraud *FraudDetector, opts ...ServiceOption) *SlipService {
	s := &SlipService{
		reader:         reader,
		extractor:      extractor,
		fraud:          fraud,
		policy:         DefaultRiskPolicy(),
		maxConcurrency: 4,
		now:            time.Now,
		newID:          func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Or(s.logger, "pipeline")
	if s.extractor == nil {
		s.extractor = NewFieldExtractor(utils.DefaultKeyValueOptions(), WithExtractorLogger(s.logger), WithExtractorMetrics(s.metrics))
	}
	if s.fraud == nil {
		s.fraud = NewFraudDetector(nil, s.logger, s.metrics)
	}
	return s
}

// AnalyzeText runs every stage after OCR. Any text, including the empty
// string, yields a result; only a cancelled context is an error.
func (s *SlipService) AnalyzeText(ctx context.Context, source, text string) (*dto.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source == "" {
		source = TextSource
	}

	rec := s.extractor.Extract(ctx, text)
	return s.AssessRecord(ctx, source, rec)
}

// AssessRecord runs reconciliation and the downstream checks on a record
// that was extracted elsewhere.
func (s *SlipService) AssessRecord(ctx context.Context, source string, rec dto.ExtractedRecord) (*dto.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	rec = Reconcile(rec)
	rec.Salary = InferSalary(rec)
	s.metrics.ObserveStage("reconcile", time.Since(start))
	s.logger.Debug("reconciled salary components",
		"source", source,
		"net_pay", rec.NetPay,
		"total_earnings", rec.TotalEarnings,
		"total_deductions", rec.TotalDeductions,
		"salary", rec.Salary,
	)

	issues := Validate(rec)
	verdict := s.fraud.CheckRecord(ctx, rec)
	report := s.policy.Score(issues, verdict.Status)
	s.metrics.IncrementDocument(string(report.Eligibility))

	result := &dto.AnalysisResult{
		ReportID:         s.newID(),
		Source:           source,
		ExtractedData:    rec,
		ValidationIssues: dto.IssueMessages(issues),
		FraudStatus:      verdict.Status,
		RiskScore:        report.Score,
		Eligibility:      report.Eligibility,
		Summary:          fmt.Sprintf("Document processed. Status: %s. Risk Score: %d", report.Eligibility, report.Score),
		ProcessedAt:      s.now().Format(time.RFC3339),
	}
	if verdict.Status == dto.FraudAnomalyDetected {
		reason := verdict.Reason
		result.FraudReason = &reason
	}

	s.logger.Info("document analysed",
		"source", source,
		"risk_score", report.Score,
		"eligibility", report.Eligibility,
		"fraud_status", verdict.Status,
		"issues", len(issues),
	)
	return result, nil
}

// AnalyzeFile reads the document and analyses its text.
func (s *SlipService) AnalyzeFile(ctx context.Context, filename string, data []byte, password string) (*dto.AnalysisResult, error) {
	if s.reader == nil {
		return nil, fmt.Errorf("analyze %s: no document reader configured", filename)
	}
	text, err := s.reader.ReadText(ctx, filename, data, password)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", filename, err)
	}
	return s.AnalyzeText(ctx, filename, text)
}

// AnalyzeBatch analyses documents concurrently. Results keep the input
// order; documents that fail are reported in Failures instead.
func (s *SlipService) AnalyzeBatch(ctx context.Context, docs []dto.UploadedDocument) (*dto.BatchAnalysisResponse, error) {
	if len(docs) == 0 {
		return nil, dto.ErrNoFiles
	}

	results := make([]*dto.AnalysisResult, len(docs))
	errs := make([]error, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, doc := range docs {
		g.Go(func() error {
			results[i], errs[i] = s.AnalyzeFile(gctx, doc.Filename, doc.Data, doc.Password)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &dto.BatchAnalysisResponse{
		Results:     []dto.AnalysisResult{},
		Failures:    []dto.BatchFailure{},
		ProcessedAt: s.now().Format(time.RFC3339),
	}
	for i, doc := range docs {
		if errs[i] != nil {
			s.logger.Warn("document failed", "source", doc.Filename, "error", errs[i])
			resp.Failures = append(resp.Failures, dto.BatchFailure{Source: doc.Filename, Error: errs[i].Error()})
			continue
		}
		resp.Results = append(resp.Results, *results[i])
	}
	return resp, nil
}
