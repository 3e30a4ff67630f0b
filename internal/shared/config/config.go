package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"ats-backend/internal/matching"
)

const (
	defaultMaxUploadBytes   = 10 << 20
	defaultAnalyzeRateRPS   = 5
	defaultAnalyzeRateBurst = 10
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string
	MaxUploadBytes  int64
	// QueueURL enables asynchronous scoring through SQS when set.
	QueueURL        string

	AnalyzeRateRPS   float64
	AnalyzeRateBurst int

	// Scoring holds the server-wide engine defaults; request options override
	// non-zero fields.
	Scoring matching.Options
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Variables
	// already present in the environment win.
	for _, path := range []string{".env", "cmd/.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Printf("config: load %s: %v", path, err)
			}
		}
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL not set in production; analyses are kept in memory")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:  normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:        getEnv("AWS_REGION", ""),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Prefix:         getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:      getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:      dbURL,
		QueueURL:         getEnv("SQS_QUEUE_URL", ""),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		AnalyzeRateRPS:   getEnvFloat("RATE_LIMIT_ANALYZE_RPS", defaultAnalyzeRateRPS),
		AnalyzeRateBurst: getEnvInt("RATE_LIMIT_ANALYZE_BURST", defaultAnalyzeRateBurst),
		Scoring:          scoringFromEnv(),
	}
}

func scoringFromEnv() matching.Options {
	opts := matching.Options{
		TopKKeywords:      getEnvInt("ATS_TOP_K", 0),
		PhraseBoostWeight: getEnvFloat("ATS_PHRASE_BOOST", 0),
		ResumeBigramBoost: getEnvFloat("ATS_RESUME_BIGRAM_BOOST", 0),
		CoverageWeight:    getEnvFloat("ATS_COVERAGE_WEIGHT", 0),
		SimilarityWeight:  getEnvFloat("ATS_SIMILARITY_WEIGHT", 0),
	}.WithDefaults(matching.DefaultOptions())
	if err := opts.Validate(); err != nil {
		log.Printf("config: ignoring ATS_* overrides: %v", err)
		return matching.DefaultOptions()
	}
	return opts
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, raw, def)
		return def
	}
	return v
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %v", key, raw, def)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
