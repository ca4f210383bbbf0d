package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort    string
	PostgresDSN string
	RedisAddr   string
	JWTSecret   string

	ShortlistKeywords  map[string]int
	ShortlistThreshold int

	ResumeMaxBytes int64
	UploadDir      string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	MailFrom     string
	MailFromName string

	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxIdle  time.Duration
	DBConnMaxLife  time.Duration
	RequestTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		PostgresDSN: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),

		ShortlistKeywords:  getKeywordWeights("SHORTLIST_KEYWORDS"),
		ShortlistThreshold: getInt("SHORTLIST_THRESHOLD", 60),

		ResumeMaxBytes: int64(getInt("RESUME_MAX_BYTES", 10_000_000)),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads/resumes"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),
		MailFromName: getEnv("MAIL_FROM_NAME", "HR"),

		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:  getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:  getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

// getKeywordWeights parses "go:30,kubernetes:40" into a lowercase keyword to
// weight table. A malformed entry is a configuration error, not a per-request
// failure, so it is fatal at startup.
func getKeywordWeights(key string) map[string]int {
	weights := make(map[string]int)
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return weights
	}
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		keyword, weight, found := strings.Cut(pair, ":")
		if !found {
			log.Fatalf("%s: entry %q must be keyword:weight", key, pair)
		}
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		parsed, err := strconv.Atoi(strings.TrimSpace(weight))
		if err != nil || keyword == "" {
			log.Fatalf("%s: invalid weight in entry %q", key, pair)
		}
		weights[keyword] = parsed
	}
	return weights
}
