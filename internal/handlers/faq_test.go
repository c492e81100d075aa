package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"tutorsite/internal/config"
	"tutorsite/internal/content"
	"tutorsite/internal/search"
	"tutorsite/views"
)

const testContent = `
version: "2026.1"
categories:
  - id: pricing
    name: Pricing
    order: 2
    questions:
      - id: fees-1
        question: What are your fees?
        answer: "Fees depend on the <strong>tutor tier</strong> you choose."
        tags: [fees]
        difficulty: basic
  - id: booking
    name: Booking
    order: 1
    questions:
      - id: book-1
        question: How do I book a tutor?
        answer: "Complete the <a href=\"https://example.com/enquire\">enquiry form</a>."
        featured: true
        tags: [enquiry]
      - id: book-2
        question: Can I book a trial lesson with a tutor?
        answer: Yes, the first lesson is a consultation.
        tags: [trial]
`

func newFAQApp(t *testing.T) *fiber.App {
	t.Helper()

	faq, err := content.Parse([]byte(testContent))
	if err != nil {
		t.Fatalf("content.Parse() error = %v", err)
	}
	idx, err := search.BuildIndex(faq.Questions)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	engine := search.NewEngine(idx, search.Options{Fuzzy: true, Categories: faq.Categories})

	cfg := &config.Config{SiteTitle: "Test Tutors", SiteFooter: "Footer text"}
	h := NewFAQHandler(engine, faq, cfg)

	app := fiber.New(fiber.Config{
		Views:       views.NewEngine(false),
		ViewsLayout: "layouts/main",
	})
	app.Get("/", h.Index)
	app.Get("/faq/search", h.Search)
	app.Get("/faq/live", h.Live)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("app.Test(%s) error = %v", target, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, string(body)
}

func TestIndex(t *testing.T) {
	app := newFAQApp(t)
	resp, body := get(t, app, "/")

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	checks := []string{
		"<title>FAQ | Test Tutors</title>",
		`id="faq-fees-1"`,
		"<strong>tutor tier</strong>",
		`rel="nofollow`,
		"Footer text",
	}
	for _, check := range checks {
		if !strings.Contains(body, check) {
			t.Errorf("body missing %q", check)
		}
	}

	// Categories render in order
	if strings.Index(body, `id="category-booking"`) > strings.Index(body, `id="category-pricing"`) {
		t.Error("booking should render before pricing")
	}
}

func TestSearchPage(t *testing.T) {
	app := newFAQApp(t)
	_, body := get(t, app, "/faq/search?q=fees")

	if !strings.Contains(body, "What are your <mark>fees</mark>?") {
		t.Errorf("body missing highlighted question:\n%s", body)
	}
	if !strings.Contains(body, "1 result for") {
		t.Error("body missing result count")
	}
}

func TestSearchPage_NoResults(t *testing.T) {
	app := newFAQApp(t)
	_, body := get(t, app, "/faq/search?q=zzzz")

	if !strings.Contains(body, "No questions matched your search.") {
		t.Error("body missing empty state")
	}
}

func TestSearchPage_EscapesQuery(t *testing.T) {
	app := newFAQApp(t)
	_, body := get(t, app, "/faq/search?q=%3Cscript%3E")

	if strings.Contains(body, "<script>") {
		t.Error("query should be escaped")
	}
}

func TestLive(t *testing.T) {
	app := newFAQApp(t)

	tests := []struct {
		name       string
		target     string
		contains   []string
		redirect   string
		trigger    string
		wantEmpty  bool
		notContain []string
	}{
		{
			name:     "typing renders results without a highlight",
			target:   "/faq/live?q=book&gen=4",
			contains: []string{`data-active-row="-1"`, `data-generation="4"`, "live-book-1", "live-book-2"},
		},
		{
			name:     "arrow down highlights the first row",
			target:   "/faq/live?q=book&key=ArrowDown&active=-1",
			contains: []string{`data-active-row="0"`, `id="live-book-1" class="active"`},
		},
		{
			name:     "arrow down wraps from the last row",
			target:   "/faq/live?q=book&key=ArrowDown&active=1",
			contains: []string{`data-active-row="0"`},
		},
		{
			name:     "arrow up from nothing selects the last row",
			target:   "/faq/live?q=book&key=ArrowUp",
			contains: []string{`data-active-row="1"`},
		},
		{
			name:     "enter on a row navigates to it",
			target:   "/faq/live?q=book&key=Enter&active=1",
			redirect: "/#faq-book-2",
		},
		{
			name:      "escape clears",
			target:    "/faq/live?q=book&key=Escape&active=0",
			trigger:   "faq-search-cleared",
			wantEmpty: true,
		},
		{
			name:      "short query renders nothing",
			target:    "/faq/live?q=b",
			wantEmpty: true,
		},
		{
			name:     "no match",
			target:   "/faq/live?q=zzzz",
			contains: []string{"No questions matched"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, app, tt.target)

			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			for _, check := range tt.contains {
				if !strings.Contains(body, check) {
					t.Errorf("body missing %q:\n%s", check, body)
				}
			}
			if tt.redirect != "" && resp.Header.Get("HX-Redirect") != tt.redirect {
				t.Errorf("HX-Redirect = %q, want %q", resp.Header.Get("HX-Redirect"), tt.redirect)
			}
			if tt.trigger != "" && resp.Header.Get("HX-Trigger") != tt.trigger {
				t.Errorf("HX-Trigger = %q, want %q", resp.Header.Get("HX-Trigger"), tt.trigger)
			}
			if tt.wantEmpty && strings.TrimSpace(body) != "" {
				t.Errorf("body = %q, want empty", body)
			}
		})
	}
}

func TestMergeBranding(t *testing.T) {
	cfg := &config.Config{SiteTitle: "T", SiteTagline: "Tag", SiteFooter: "F", SiteLogoURL: "/logo.png"}
	data := MergeBranding(fiber.Map{"Title": "X"}, cfg)

	want := map[string]string{"Title": "X", "SiteTitle": "T", "SiteTagline": "Tag", "SiteFooter": "F", "SiteLogoURL": "/logo.png"}
	for k, v := range want {
		if data[k] != v {
			t.Errorf("data[%q] = %v, want %q", k, data[k], v)
		}
	}
}
