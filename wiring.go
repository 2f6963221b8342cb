package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aashish23092/salary-slip-risk/client"
	"github.com/Aashish23092/salary-slip-risk/config"
	"github.com/Aashish23092/salary-slip-risk/logging"
	"github.com/Aashish23092/salary-slip-risk/metrics"
	"github.com/Aashish23092/salary-slip-risk/service"
	"github.com/Aashish23092/salary-slip-risk/utils"
)

// app is everything a command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	registry *prometheus.Registry
	service  *service.SlipService
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.Log.SlogLevel(), cfg.Log.Format)
	logger := logging.New("main")

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, logging.New("tesseract"))
	var ocr service.OCREngine = tesseractClient
	if cfg.PaddleOCRURL != "" {
		// PaddleOCR first, Tesseract when it fails or finds next to nothing
		ocr = service.ChainOCR(client.NewPaddleClient(cfg.PaddleOCRURL, cfg.Models.Timeout), tesseractClient)
	}
	reader := service.NewDocumentReader(ocr, service.NewPDFProcessor(), logging.New("reader"), m)

	extractor := service.NewFieldExtractor(
		utils.KeyValueOptions{
			StreamWindow:   cfg.Extraction.StreamWindow,
			LookaheadLines: cfg.Extraction.LookaheadLines,
			NextLineGuards: cfg.Extraction.NextLineGuards,
		},
		service.WithRecognizer(entityRecognizer(cfg, cfg.Models.EntityRecognizerURL, "entity recognizer", logger)),
		service.WithOverlay(entityRecognizer(cfg, cfg.Models.EntityOverlayURL, "salary slip entity model", logger)),
		service.WithExtractorLogger(logging.New("extractor")),
		service.WithExtractorMetrics(m),
	)

	fraud := service.NewFraudDetector(anomalyModel(cfg, logger), logging.New("fraud"), m)

	slipService := service.NewSlipService(reader, extractor, fraud,
		service.WithRiskPolicy(service.RiskPolicy{
			IssuePenalty:         cfg.Risk.IssuePenalty,
			AnomalyPenalty:       cfg.Risk.AnomalyPenalty,
			EligibilityThreshold: cfg.Risk.EligibilityThreshold,
		}),
		service.WithMaxConcurrency(cfg.Batch.MaxConcurrency),
		service.WithLogger(logging.New("pipeline")),
		service.WithMetrics(m),
	)

	return &app{
		cfg:      cfg,
		registry: reg,
		service:  slipService,
	}, nil
}

// entityRecognizer returns nil when url is empty; the extractor then runs
// regex-only for that source.
func entityRecognizer(cfg *config.Config, url, name string, logger *slog.Logger) service.EntityRecognizer {
	if url == "" {
		logger.Warn(name + " not configured, using regex-only extraction")
		return nil
	}
	var r service.EntityRecognizer = client.NewEntityClient(url, cfg.Models.Timeout)
	if cfg.Models.SerializeInference {
		r = service.SerializeRecognizer(r)
	}
	return r
}

// anomalyModel picks the hosted model, then an envelope file, then the
// built-in envelope. The choice is resolved on first use.
func anomalyModel(cfg *config.Config, logger *slog.Logger) *service.ModelHandle[service.AnomalyModel] {
	if cfg.Models.DisableAnomalyModel {
		logger.Warn("anomaly model disabled, every fraud verdict will be Normal")
		return nil
	}

	return service.NewModelHandle(func() (service.AnomalyModel, error) {
		var m service.AnomalyModel
		switch {
		case cfg.Models.AnomalyModelURL != "":
			logger.Info("using hosted anomaly model", "url", cfg.Models.AnomalyModelURL)
			m = client.NewAnomalyClient(cfg.Models.AnomalyModelURL, cfg.Models.Timeout)
		case cfg.Models.AnomalyEnvelopePath != "":
			env, err := service.LoadEnvelopeModel(cfg.Models.AnomalyEnvelopePath)
			if err != nil {
				return nil, err
			}
			logger.Info("using anomaly envelope", "path", cfg.Models.AnomalyEnvelopePath)
			m = env
		default:
			logger.Info("using built-in anomaly envelope")
			m = service.DefaultEnvelopeModel()
		}
		if cfg.Models.SerializeInference {
			m = service.SerializeModel(m)
		}
		return m, nil
	})
}
