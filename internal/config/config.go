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
	StylegestAPIKey string

	// Worker pool
	WorkerCount     int
	MaxQueueSize    int
	DocumentWorkers int

	// Upload limits
	MaxUploadBytes int64

	// Chunking and tagging
	ChunkMaxChars   int
	ChunkRetryChars int
	TaggerMaxChars  int

	// Report trimming
	TopKNouns        int
	TopKVerbs        int
	TopKAdjectives   int
	TopKAdverbs      int
	TopKPrepositions int
	TopKHedges       int

	// Optional YAML vocabulary override
	LexiconFile string

	// Report archive
	ReportDBPath string

	// Job state
	JobTTL time.Duration

	// Rate limiting for POST /api/analyze
	AnalyzeRatePerMinute int

	// PDF
	PDFFallbackPdftotext bool

	DefaultJournalName string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		StylegestAPIKey: os.Getenv("STYLEGEST_API_KEY"),

		WorkerCount:     envInt("WORKER_COUNT", 4),
		MaxQueueSize:    envInt("MAX_QUEUE_SIZE", 100),
		DocumentWorkers: envInt("DOCUMENT_WORKERS", 2),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ChunkMaxChars:   envInt("CHUNK_MAX_CHARS", 30000),
		ChunkRetryChars: envInt("CHUNK_RETRY_CHARS", 5000),
		TaggerMaxChars:  envInt("TAGGER_MAX_CHARS", 60000),

		TopKNouns:        envInt("TOPK_NOUNS", 50),
		TopKVerbs:        envInt("TOPK_VERBS", 30),
		TopKAdjectives:   envInt("TOPK_ADJECTIVES", 40),
		TopKAdverbs:      envInt("TOPK_ADVERBS", 40),
		TopKPrepositions: envInt("TOPK_PREPOSITIONS", 40),
		TopKHedges:       envInt("TOPK_HEDGES", 20),

		LexiconFile: os.Getenv("LEXICON_FILE"),

		ReportDBPath: envOr("REPORT_DB_PATH", "stylegest.db"),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		AnalyzeRatePerMinute: envInt("ANALYZE_RATE_PER_MINUTE", 30),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		DefaultJournalName: envOr("DEFAULT_JOURNAL_NAME", "Target Journal"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.DocumentWorkers <= 0 {
		cfg.DocumentWorkers = 2
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ChunkMaxChars <= 0 {
		cfg.ChunkMaxChars = 30000
	}
	if cfg.ChunkRetryChars <= 0 || cfg.ChunkRetryChars >= cfg.ChunkMaxChars {
		cfg.ChunkRetryChars = min(5000, cfg.ChunkMaxChars/2)
	}
	if cfg.TaggerMaxChars <= 0 {
		cfg.TaggerMaxChars = 60000
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.AnalyzeRatePerMinute <= 0 {
		cfg.AnalyzeRatePerMinute = 30
	}

	return cfg
}

// Validate checks settings the HTTP server cannot run without.
func (c Config) Validate() error {
	if c.StylegestAPIKey == "" {
		return fmt.Errorf("STYLEGEST_API_KEY is required")
	}
	if c.TaggerMaxChars < c.ChunkMaxChars {
		return fmt.Errorf("TAGGER_MAX_CHARS (%d) must be at least CHUNK_MAX_CHARS (%d)", c.TaggerMaxChars, c.ChunkMaxChars)
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
