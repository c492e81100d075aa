package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"tutorsite/internal/models"
)

// Suggestion length limits, counted in characters.
const (
	QuestionMinLength = 10
	QuestionMaxLength = 500
	AnswerMinLength   = 20
	AnswerMaxLength   = 2000
	MaxTags           = 10
	MaxNameLength     = 100
)

// MaxQueryLength bounds search queries accepted from requests.
const MaxQueryLength = 200

// DefaultSpamThreshold is the score at or above which content is rejected.
const DefaultSpamThreshold = 0.7

// ReviewSpamScore is the score above which accepted content is held for review.
const ReviewSpamScore = 0.3

// CategoryPattern defines the valid category id format.
var CategoryPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidateSuggestion checks a visitor suggestion and returns every problem found.
func ValidateSuggestion(question, answer, category string, tags []string) []string {
	var errs []string

	q := utf8.RuneCountInString(strings.TrimSpace(question))
	a := utf8.RuneCountInString(strings.TrimSpace(answer))

	if q < QuestionMinLength {
		errs = append(errs, fmt.Sprintf("Question must be at least %d characters long", QuestionMinLength))
	}
	if q > QuestionMaxLength {
		errs = append(errs, fmt.Sprintf("Question must be less than %d characters", QuestionMaxLength))
	}
	if a < AnswerMinLength {
		errs = append(errs, fmt.Sprintf("Answer must be at least %d characters long", AnswerMinLength))
	}
	if a > AnswerMaxLength {
		errs = append(errs, fmt.Sprintf("Answer must be less than %d characters", AnswerMaxLength))
	}
	if category == "" {
		errs = append(errs, "Category is required")
	} else if !CategoryPattern.MatchString(category) {
		errs = append(errs, "Category is invalid")
	}
	if len(tags) > MaxTags {
		errs = append(errs, fmt.Sprintf("At most %d tags are allowed", MaxTags))
	}

	return errs
}

// ValidateVoteType checks the vote type of a suggestion vote.
func ValidateVoteType(voteType string) bool {
	return voteType == models.VoteUp || voteType == models.VoteDown
}

// ValidateStatus checks a suggestion status filter. Empty means any status.
func ValidateStatus(status string) bool {
	switch status {
	case "", models.SuggestionPending, models.SuggestionUnderReview, models.SuggestionApproved, models.SuggestionRejected:
		return true
	}
	return false
}

// ValidateDifficulty checks a difficulty filter. Empty means any difficulty.
func ValidateDifficulty(difficulty string) bool {
	switch difficulty {
	case "", models.DifficultyBasic, models.DifficultyIntermediate, models.DifficultyAdvanced:
		return true
	}
	return false
}

// ValidateSegment checks a client segment filter. Empty means any segment.
func ValidateSegment(segment string) bool {
	switch segment {
	case "", models.SegmentOxbridgePrep, models.SegmentElevenPlus, models.SegmentEliteCorporate,
		models.SegmentComparisonShopper, models.SegmentAll:
		return true
	}
	return false
}

// NormalizeQuery trims a raw query and caps its length.
func NormalizeQuery(query string) string {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) > MaxQueryLength {
		q = string([]rune(q)[:MaxQueryLength])
	}
	return q
}

// ParseOptionalBool parses "true"/"false" style values. Empty yields nil.
func ParseOptionalBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", s)
	}
	return &b, nil
}

// NormalizeTags lowercases, trims and deduplicates tags, dropping empties.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

var botAgent = regexp.MustCompile(`(?i)bot|crawler|spider`)

// IsSuspiciousUserAgent flags missing, truncated or crawler user agents.
func IsSuspiciousUserAgent(ua string) bool {
	return len(ua) < 10 || botAgent.MatchString(ua)
}

// SpamResult is the outcome of DetectSpam.
type SpamResult struct {
	Score   float64
	Reasons []string
}

// IsSpam reports whether the score reaches threshold.
func (r SpamResult) IsSpam(threshold float64) bool {
	return r.Score >= threshold
}

// NeedsReview reports whether content that is not spam still scores high
// enough to be held for review.
func (r SpamResult) NeedsReview(threshold float64) bool {
	return r.Score > ReviewSpamScore && !r.IsSpam(threshold)
}

var spamPatterns = []string{
	"buy now",
	"click here",
	"free money",
	"guaranteed",
	"winner",
	"congratulations",
}

// DetectSpam scores content between 0 and 1.
func DetectSpam(content string) SpamResult {
	var r SpamResult
	length := utf8.RuneCountInString(content)

	if length > 0 {
		upper := 0
		for _, c := range content {
			if unicode.IsUpper(c) {
				upper++
			}
		}
		if float64(upper)/float64(length) > 0.7 {
			r.Score += 0.3
			r.Reasons = append(r.Reasons, "excessive_caps")
		}
	}

	if hasRepeatedRun(content, 5) {
		r.Score += 0.2
		r.Reasons = append(r.Reasons, "repeated_characters")
	}

	lower := strings.ToLower(content)
	for _, p := range spamPatterns {
		if strings.Contains(lower, p) {
			r.Score += 0.4
			r.Reasons = append(r.Reasons, "spam_keywords")
		}
	}

	if length < 20 || length > 5000 {
		r.Score += 0.1
		r.Reasons = append(r.Reasons, "suspicious_length")
	}

	r.Score = math.Min(math.Round(r.Score*100)/100, 1.0)
	return r
}

// hasRepeatedRun reports whether any character repeats n or more times in a row.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for i, c := range s {
		if i > 0 && c == prev {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return true
		}
		prev = c
	}
	return false
}
