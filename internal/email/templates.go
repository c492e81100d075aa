package email

import (
	"fmt"
	"html"
	"strings"

	"tutorsite/internal/config"
	"tutorsite/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .button:hover { background: #1d4ed8; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
        .success { color: #059669; }
        .warning { color: #d97706; }
        .error { color: #dc2626; }
        code { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; font-family: monospace; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// SuggestionSubmitted generates email for moderators when a visitor suggests a question.
func (t *Templates) SuggestionSubmitted(s *models.Suggestion) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] New FAQ suggestion: %s", t.cfg.SiteTitle, truncate(s.Question, 60))

	content := fmt.Sprintf(`
        <p>A visitor has suggested a new question for the FAQ.</p>

        <div class="info-box">
            <p><span class="label">Question:</span> %s</p>
            <p><span class="label">Suggested answer:</span> %s</p>
            <p><span class="label">Category:</span> <code>%s</code></p>
            <p><span class="label">Tags:</span> %s</p>
            <p><span class="label">Suggested by:</span> %s</p>
            <p><span class="label">Spam score:</span> <span class="%s">%.2f</span></p>
        </div>
    `,
		html.EscapeString(s.Question),
		html.EscapeString(s.Answer),
		html.EscapeString(s.Category),
		html.EscapeString(joinTags(s.Tags)),
		html.EscapeString(s.DisplayName()),
		spamClass(s.SpamScore),
		s.SpamScore,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`New FAQ suggestion

Question: %s
Suggested answer: %s
Category: %s
Tags: %s
Suggested by: %s
Spam score: %.2f

--
%s
%s`,
		s.Question,
		s.Answer,
		s.Category,
		joinTags(s.Tags),
		s.DisplayName(),
		s.SpamScore,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}

// MissedSearches generates a digest of popular searches that returned nothing.
func (t *Templates) MissedSearches(stats []models.SearchQueryStat) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] %d searches with no FAQ answer", t.cfg.SiteTitle, len(stats))

	var rows, lines []string
	for _, s := range stats {
		rows = append(rows, fmt.Sprintf("<li><code>%s</code> (%d)</li>", html.EscapeString(s.Query), s.Count))
		lines = append(lines, fmt.Sprintf("- %s (%d)", s.Query, s.Count))
	}

	content := fmt.Sprintf(`
        <p>Visitors searched for the following without finding an answer.</p>

        <div class="info-box">
            <ul>%s</ul>
        </div>

        <p class="warning">Consider adding questions that cover these searches.</p>
    `, strings.Join(rows, ""))

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Searches with no FAQ answer

%s

--
%s
%s`,
		strings.Join(lines, "\n"),
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}

func spamClass(score float64) string {
	if score >= 0.3 {
		return "warning"
	}
	return "success"
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
