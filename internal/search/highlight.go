package search

import (
	"html"
	"html/template"
	"regexp"
	"sort"
	"strings"

	"tutorsite/internal/models"
)

const markOpen, markClose = "<mark>", "</mark>"

// Terms returns the strings to highlight for a query: the whole query
// followed by its words, longest first so the full phrase wins.
func Terms(query string) []string {
	q := NormalizeQuery(query)
	if q == "" {
		return nil
	}
	seen := map[string]bool{q: true}
	terms := []string{q}
	for _, w := range strings.Fields(q) {
		if !seen[w] {
			seen[w] = true
			terms = append(terms, w)
		}
	}
	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	return terms
}

// Highlight finds case-insensitive occurrences of terms in text and returns
// sorted, merged spans.
func Highlight(text string, terms []string) []models.Span {
	if text == "" || len(terms) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	re, err := regexp.Compile("(?i)" + strings.Join(quoted, "|"))
	if err != nil {
		return nil
	}

	var spans []models.Span
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if n := len(spans); n > 0 && loc[0] <= spans[n-1].End {
			if loc[1] > spans[n-1].End {
				spans[n-1].End = loc[1]
			}
			continue
		}
		spans = append(spans, models.Span{Start: loc[0], End: loc[1]})
	}
	return spans
}

// Markup escapes text and wraps each span in a mark element.
func Markup(text string, spans []models.Span) template.HTML {
	var b strings.Builder
	last := 0
	for _, s := range spans {
		if s.Start < last || s.End > len(text) || s.Start >= s.End {
			continue
		}
		b.WriteString(html.EscapeString(text[last:s.Start]))
		b.WriteString(markOpen)
		b.WriteString(html.EscapeString(text[s.Start:s.End]))
		b.WriteString(markClose)
		last = s.End
	}
	b.WriteString(html.EscapeString(text[last:]))
	return template.HTML(b.String())
}

// HighlightResult fills in the highlighted question and answer of r.
func HighlightResult(r *models.ScoredResult, terms []string) {
	q, a := r.Entry.Question, r.Entry.Answer
	qs, as := Highlight(q, terms), Highlight(a, terms)
	r.Highlighted = &models.Highlighted{
		Question:      Markup(q, qs),
		Answer:        Markup(a, as),
		QuestionSpans: qs,
		AnswerSpans:   as,
	}
}
