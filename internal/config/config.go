package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Generative model
	ArkAPIKey  string
	ArkBaseURL string
	Model      string
	TitleModel string

	// Worker pool
	WorkerCount            int
	MaxQueueSize           int
	MaxConcurrentTitles    int
	MaxConcurrentInterpret int

	// Upload limits
	MaxUploadBytes int64

	// Restructuring defaults
	DefaultMaxWordCount int
	SimilarityThreshold float64
	TitleTimeout        time.Duration

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("RESTRUCT_API_KEY"),

		ArkAPIKey:  envOr("ARK_API_KEY", os.Getenv("DOUBAO_API_KEY")),
		ArkBaseURL: envOr("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Model:      envOr("ARK_MODEL", "doubao-seed-1-6-251015"),
		TitleModel: envOr("ARK_TITLE_MODEL", "doubao-seed-1-6-flash-250828"),

		WorkerCount:            envInt("WORKER_COUNT", 4),
		MaxQueueSize:           envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentTitles:    envInt("MAX_CONCURRENT_TITLES", 4),
		MaxConcurrentInterpret: envInt("MAX_CONCURRENT_INTERPRET", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultMaxWordCount: envInt("DEFAULT_MAX_WORD_COUNT", 10000),
		SimilarityThreshold: envFloat("SIMILARITY_THRESHOLD", 0.3),
		TitleTimeout:        envDuration("TITLE_TIMEOUT", 60*time.Second),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentTitles <= 0 {
		cfg.MaxConcurrentTitles = 4
	}
	if cfg.MaxConcurrentInterpret <= 0 {
		cfg.MaxConcurrentInterpret = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultMaxWordCount <= 0 {
		cfg.DefaultMaxWordCount = 10000
	}
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold >= 1 {
		cfg.SimilarityThreshold = 0.3
	}
	if cfg.TitleTimeout <= 0 {
		cfg.TitleTimeout = 60 * time.Second
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("RESTRUCT_API_KEY is required")
	}
	if c.ArkAPIKey == "" {
		return fmt.Errorf("ARK_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
