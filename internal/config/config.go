package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis, shared by the rate limiter and the search response cache.
	// Empty means in-process storage.
	RedisURL string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Session
	SessionSecret string // Used for encrypting cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Content
	ContentFile string // env: FAQ_CONTENT_FILE, default: "content/faq.yaml"

	// Search
	SearchFuzzy      bool
	SearchMaxResults int
	SearchCacheSize  int
	SearchCacheTTL   time.Duration

	// Metrics
	MetricsTopQueries int // Queries exported per outcome on /metrics

	// Analytics
	AnalyticsFlushInterval     time.Duration
	MissedSearchReportInterval time.Duration // 0 disables the moderator digest

	// SMTP
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls" or "starttls"

	// Notifications
	ModeratorEmails          string // Comma-separated recipients for suggestion notifications
	EmailNotifyOnSuggestion  bool
	SuggestionPendingLimit   int // Pending suggestions accepted per visitor session
	SuggestionVotesPerMinute int
	SuggestionSpamThreshold  float64

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Private Tutoring"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/tutorsite?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		ContentFile: getEnv("FAQ_CONTENT_FILE", "content/faq.yaml"),

		SearchFuzzy:      getEnvBool("SEARCH_FUZZY", true),
		SearchMaxResults: getEnvInt("SEARCH_MAX_RESULTS", 50),
		SearchCacheSize:  getEnvInt("SEARCH_CACHE_SIZE", 512),
		SearchCacheTTL:   getEnvDuration("SEARCH_CACHE_TTL", 5*time.Minute),

		MetricsTopQueries: getEnvInt("METRICS_TOP_QUERIES", 25),

		AnalyticsFlushInterval:     getEnvDuration("ANALYTICS_FLUSH_INTERVAL", time.Minute),
		MissedSearchReportInterval: getEnvDuration("MISSED_SEARCH_REPORT_INTERVAL", 24*time.Hour),

		SMTPEnabled:  getEnvBool("SMTP_ENABLED", false),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", ""),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		ModeratorEmails:          getEnv("MODERATOR_EMAILS", ""),
		EmailNotifyOnSuggestion:  getEnvBool("EMAIL_NOTIFY_ON_SUGGESTION", true),
		SuggestionPendingLimit:   getEnvInt("SUGGESTION_PENDING_LIMIT", 5),
		SuggestionVotesPerMinute: getEnvInt("SUGGESTION_VOTES_PER_MINUTE", 10),
		SuggestionSpamThreshold:  getEnvFloat("SUGGESTION_SPAM_THRESHOLD", 0.7),

		SiteTitle:   getEnv("SITE_TITLE", "Private Tutoring"),
		SiteTagline: getEnv("SITE_TAGLINE", "Answers to the questions families ask us most"),
		SiteFooter:  getEnv("SITE_FOOTER", "Private Tutoring - Frequently asked questions"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// IsEmailEnabled returns true if SMTP is configured well enough to send mail.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// ModeratorRecipients returns the parsed moderator email list.
func (c *Config) ModeratorRecipients() []string {
	var out []string
	for _, addr := range strings.Split(c.ModeratorEmails, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
