// Package content loads the FAQ content file.
package content

import (
	"fmt"
	"html"
	"os"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"tutorsite/internal/models"
)

// File is the structure of the FAQ content file.
type File struct {
	Version    string               `yaml:"version"`
	Categories []models.FAQCategory `yaml:"categories"`
}

// Content is the loaded, flattened question set.
type Content struct {
	Version    string
	Categories []models.FAQCategory
	Questions  []models.FAQQuestion
}

var (
	answerPolicy = newAnswerPolicy()
	textPolicy   = bluemonday.StrictPolicy()
)

func newAnswerPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Load reads and parses the content file at path.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes content YAML. Categories are ordered by their order field and
// questions are flattened in category order. A question without a category
// inherits its parent's id.
func Parse(data []byte) (*Content, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse content file: %w", err)
	}

	sort.SliceStable(f.Categories, func(i, j int) bool {
		return f.Categories[i].Order < f.Categories[j].Order
	})

	c := &Content{Version: f.Version, Categories: f.Categories}
	for ci := range f.Categories {
		cat := &f.Categories[ci]
		for qi := range cat.Questions {
			q := &cat.Questions[qi]
			if q.Category == "" {
				q.Category = cat.ID
			}
			if q.Tags == nil {
				q.Tags = []string{}
			}
			q.AnswerHTML = answerPolicy.Sanitize(q.Answer)
			q.Answer = PlainText(q.Answer)
			c.Questions = append(c.Questions, *q)
		}
	}
	return c, nil
}

// PlainText strips markup from s, leaving readable text.
func PlainText(s string) string {
	stripped := textPolicy.Sanitize(s)
	stripped = html.UnescapeString(stripped)
	return strings.Join(strings.Fields(stripped), " ")
}

// Category returns the category with the given id.
func (c *Content) Category(id string) *models.FAQCategory {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// Featured returns the featured questions in content order.
func (c *Content) Featured() []models.FAQQuestion {
	var out []models.FAQQuestion
	for _, q := range c.Questions {
		if q.Featured {
			out = append(out, q)
		}
	}
	return out
}
