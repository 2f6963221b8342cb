package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "SLIPSCORE_CONFIG"

	defaultServerPort  = "8080"
	defaultTessdata    = "/usr/share/tesseract-ocr/5/tessdata/"
	defaultMaxFileSize = 10 * 1024 * 1024 // 10 MB
)

type Config struct {
	ServerPort        string           `yaml:"serverPort"`
	TesseractDataPath string           `yaml:"tesseractDataPath"`
	PaddleOCRURL      string           `yaml:"paddleOcrUrl"`
	MaxFileSize       int64            `yaml:"maxFileSize"`
	Log               LogConfig        `yaml:"log"`
	Extraction        ExtractionConfig `yaml:"extraction"`
	Models            ModelsConfig     `yaml:"models"`
	Risk              RiskConfig       `yaml:"risk"`
	Batch             BatchConfig      `yaml:"batch"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ExtractionConfig holds the empirically tuned look-ahead constants of the
// key/value extractor.
type ExtractionConfig struct {
	StreamWindow   int      `yaml:"streamWindow"`
	LookaheadLines int      `yaml:"lookaheadLines"`
	NextLineGuards []string `yaml:"nextLineGuards"`
}

// ModelsConfig points at the optional model collaborators. Empty URLs mean
// the collaborator is absent.
type ModelsConfig struct {
	EntityOverlayURL    string        `yaml:"entityOverlayUrl"`
	EntityRecognizerURL string        `yaml:"entityRecognizerUrl"`
	AnomalyModelURL     string        `yaml:"anomalyModelUrl"`
	AnomalyEnvelopePath string        `yaml:"anomalyEnvelopePath"`
	DisableAnomalyModel bool          `yaml:"disableAnomalyModel"`
	SerializeInference  bool          `yaml:"serializeInference"`
	Timeout             time.Duration `yaml:"timeout"`
}

type RiskConfig struct {
	IssuePenalty         int `yaml:"issuePenalty"`
	AnomalyPenalty       int `yaml:"anomalyPenalty"`
	EligibilityThreshold int `yaml:"eligibilityThreshold"`
}

type BatchConfig struct {
	MaxConcurrency int `yaml:"maxConcurrency"`
}

func defaultConfig() Config {
	return Config{
		ServerPort:        defaultServerPort,
		TesseractDataPath: defaultTessdata,
		MaxFileSize:       defaultMaxFileSize,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Extraction: ExtractionConfig{
			StreamWindow:   100,
			LookaheadLines: 1,
			NextLineGuards: []string{"Name", "Designation", "Month"},
		},
		Models: ModelsConfig{
			Timeout: 10 * time.Second,
		},
		Risk: RiskConfig{
			IssuePenalty:         20,
			AnomalyPenalty:       50,
			EligibilityThreshold: 40,
		},
		Batch: BatchConfig{
			MaxConcurrency: 4,
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// named by SLIPSCORE_CONFIG, and environment overrides.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	// Unmarshalling over the defaults keeps every key the file omits.
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.ServerPort = v
	}
	if v := os.Getenv("TESSDATA_PREFIX"); v != "" {
		c.TesseractDataPath = v
	}
	if v := os.Getenv("PADDLEOCR_API_URL"); v != "" {
		c.PaddleOCRURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("NER_MODEL_URL"); v != "" {
		c.Models.EntityOverlayURL = v
	}
	if v := os.Getenv("ENTITY_RECOGNIZER_URL"); v != "" {
		c.Models.EntityRecognizerURL = v
	}
	if v := os.Getenv("ANOMALY_MODEL_URL"); v != "" {
		c.Models.AnomalyModelURL = v
	}
	if v := os.Getenv("ANOMALY_ENVELOPE_PATH"); v != "" {
		c.Models.AnomalyEnvelopePath = v
	}
	if v := os.Getenv("STREAM_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Extraction.StreamWindow = n
		}
	}
}

// Validate rejects settings that would break score monotonicity or the
// extractor's bounded search.
func (c *Config) Validate() error {
	if c.Extraction.StreamWindow <= 0 || c.Extraction.StreamWindow > 1000 {
		return fmt.Errorf("config: extraction.streamWindow must be in 1..1000, got %d", c.Extraction.StreamWindow)
	}
	if c.Extraction.LookaheadLines < 0 {
		return fmt.Errorf("config: extraction.lookaheadLines must not be negative")
	}
	if c.Risk.IssuePenalty < 0 || c.Risk.AnomalyPenalty < 0 {
		return fmt.Errorf("config: risk penalties must not be negative")
	}
	if c.Risk.EligibilityThreshold < 0 || c.Risk.EligibilityThreshold > 100 {
		return fmt.Errorf("config: risk.eligibilityThreshold must be in 0..100, got %d", c.Risk.EligibilityThreshold)
	}
	if c.Batch.MaxConcurrency < 1 {
		c.Batch.MaxConcurrency = 1
	}
	return nil
}

// SlogLevel maps the configured level name onto slog.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
