package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "SEARCH_FUZZY", "SEARCH_MAX_RESULTS", "SEARCH_CACHE_TTL", "FAQ_CONTENT_FILE", "MISSED_SEARCH_REPORT_INTERVAL", "METRICS_TOP_QUERIES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
	if !cfg.SearchFuzzy {
		t.Error("SearchFuzzy should default to true")
	}
	if cfg.SearchMaxResults != 50 {
		t.Errorf("SearchMaxResults = %d, want 50", cfg.SearchMaxResults)
	}
	if cfg.MetricsTopQueries != 25 {
		t.Errorf("MetricsTopQueries = %d, want 25", cfg.MetricsTopQueries)
	}
	if cfg.SearchCacheTTL != 5*time.Minute {
		t.Errorf("SearchCacheTTL = %v, want 5m", cfg.SearchCacheTTL)
	}
	if cfg.ContentFile != "content/faq.yaml" {
		t.Errorf("ContentFile = %q", cfg.ContentFile)
	}
	if cfg.MissedSearchReportInterval != 24*time.Hour {
		t.Errorf("MissedSearchReportInterval = %v, want 24h", cfg.MissedSearchReportInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SEARCH_FUZZY", "false")
	t.Setenv("SEARCH_MAX_RESULTS", "20")
	t.Setenv("ANALYTICS_FLUSH_INTERVAL", "30s")
	t.Setenv("SUGGESTION_SPAM_THRESHOLD", "0.5")
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")

	cfg := Load()
	if cfg.IsDev() {
		t.Error("IsDev() should be false in production")
	}
	if cfg.SearchFuzzy {
		t.Error("SearchFuzzy should be false")
	}
	if cfg.SearchMaxResults != 20 {
		t.Errorf("SearchMaxResults = %d, want 20", cfg.SearchMaxResults)
	}
	if cfg.AnalyticsFlushInterval != 30*time.Second {
		t.Errorf("AnalyticsFlushInterval = %v, want 30s", cfg.AnalyticsFlushInterval)
	}
	if cfg.SuggestionSpamThreshold != 0.5 {
		t.Errorf("SuggestionSpamThreshold = %v, want 0.5", cfg.SuggestionSpamThreshold)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want fallback 100", cfg.RateLimitMax)
	}
}

func TestIsEmailEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"fully configured", Config{SMTPEnabled: true, SMTPHost: "smtp.example.com", SMTPFrom: "faq@example.com"}, true},
		{"disabled", Config{SMTPEnabled: false, SMTPHost: "smtp.example.com", SMTPFrom: "faq@example.com"}, false},
		{"missing host", Config{SMTPEnabled: true, SMTPFrom: "faq@example.com"}, false},
		{"missing from", Config{SMTPEnabled: true, SMTPHost: "smtp.example.com"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEmailEnabled(); got != tt.want {
				t.Errorf("IsEmailEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModeratorRecipients(t *testing.T) {
	cfg := &Config{ModeratorEmails: " a@example.com, ,b@example.com "}
	want := []string{"a@example.com", "b@example.com"}
	if got := cfg.ModeratorRecipients(); !reflect.DeepEqual(got, want) {
		t.Errorf("ModeratorRecipients() = %v, want %v", got, want)
	}
	if got := (&Config{}).ModeratorRecipients(); got != nil {
		t.Errorf("empty ModeratorRecipients() = %v, want nil", got)
	}
}
