package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tutorsite/internal/models"
)

const testContent = `
version: "test"
categories:
  - id: booking
    name: Booking
    order: 1
    questions:
      - id: book-1
        question: How do I book a tutor?
        answer: Complete the enquiry form.
        tags: [enquiry]
        difficulty: basic
        client_segment: all
      - id: book-2
        question: Can I book a trial lesson?
        answer: Yes, the first lesson is a consultation.
        tags: [trial]
        difficulty: basic
  - id: programmes
    name: Programmes
    order: 2
    questions:
      - id: oxb-1
        question: Do you prepare students for Oxbridge interviews?
        answer: Our interview coaching covers every college.
        tags: [oxbridge]
        difficulty: advanced
        client_segment: oxbridge_prep
`

// setupCLITest writes a content file and resets flags shared between tests.
func setupCLITest(t *testing.T) *bytes.Buffer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "faq.yaml")
	if err := os.WriteFile(path, []byte(testContent), 0o600); err != nil {
		t.Fatalf("failed to write content file: %v", err)
	}
	contentFile = path
	noFuzzy = false

	queryCmd.Flags().Set("limit", "10")
	queryCmd.Flags().Set("category", "")
	queryCmd.Flags().Set("difficulty", "")
	queryCmd.Flags().Set("segment", "")
	queryCmd.Flags().Set("json", "false")
	statsCmd.Flags().Set("json", "false")
	statsCmd.Flags().Set("misses", "0")
	watchCmd.Flags().Set("delay", "20ms")
	watchCmd.Flags().Set("pace", "0s")
	watchCmd.Flags().Set("limit", "5")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(""))
	return buf
}

func TestQuery(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"query", "book", "--content", contentFile})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("query failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, `2 results for "book"`) {
		t.Errorf("unexpected header:\n%s", out)
	}
	if strings.Index(out, "(book-1)") > strings.Index(out, "(book-2)") {
		t.Errorf("equal scores should keep content order:\n%s", out)
	}
	if !strings.Contains(out, "[150.0]") {
		t.Errorf("question matches should score 150:\n%s", out)
	}
}

func TestQuery_Filters(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"query", "interview", "--segment", "oxbridge_prep", "--difficulty", "advanced"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(oxb-1)") {
		t.Errorf("expected oxb-1:\n%s", buf.String())
	}
}

func TestQuery_NoResults(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"query", "zzzz"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !strings.Contains(buf.String(), `No results for "zzzz"`) {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestQuery_JSON(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"query", "trial", "--json"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("query failed: %v", err)
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if resp.Metadata.TotalResults != 1 || resp.Results[0].Entry.ID != "book-2" {
		t.Errorf("unexpected response: %+v", resp.Metadata)
	}
}

func TestQuery_RequiresArgs(t *testing.T) {
	setupCLITest(t)
	rootCmd.SetArgs([]string{"query"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error without a query")
	}
}

func TestQuery_MissingContent(t *testing.T) {
	setupCLITest(t)
	rootCmd.SetArgs([]string{"query", "book", "--content", filepath.Join(t.TempDir(), "missing.yaml")})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing content file")
	}
}

func TestStats(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"stats"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Questions:  3", "Categories: 2", "By difficulty:", "advanced  1", "basic     2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStats_JSON(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetArgs([]string{"stats", "--json"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	var stats models.IndexStats
	if err := json.Unmarshal(buf.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if stats.QuestionCount != 3 || stats.CategoryDistribution["booking"] != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestWatch_DeliversOnlySettledQuery(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetIn(strings.NewReader("b\nbo\nboo\nbook\n"))
	rootCmd.SetArgs([]string{"watch", "--delay", "50ms"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "> book (generation 4): 2 results") {
		t.Errorf("expected settled result for book:\n%s", out)
	}
	if strings.Contains(out, "> boo (") {
		t.Errorf("superseded query should not be printed:\n%s", out)
	}
}

func TestWatch_EmptyLineClears(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetIn(strings.NewReader("trial\n\n"))
	rootCmd.SetArgs([]string{"watch"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[len(lines)-1] != "(cleared)" {
		t.Errorf("last line = %q, want (cleared)", lines[len(lines)-1])
	}
}

func TestWatch_Paced(t *testing.T) {
	buf := setupCLITest(t)
	rootCmd.SetIn(strings.NewReader("trial\ninterview\n"))
	rootCmd.SetArgs([]string{"watch", "--delay", "10ms", "--pace", "100ms"})

	start := time.Now()
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if time.Since(start) < 200*time.Millisecond {
		t.Error("pace should pause between lines")
	}

	out := buf.String()
	if !strings.Contains(out, "> trial (") || !strings.Contains(out, "> interview (") {
		t.Errorf("both paced queries should settle:\n%s", out)
	}
}
