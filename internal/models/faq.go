package models

import "time"

// Difficulty levels for FAQ questions.
const (
	DifficultyBasic        = "basic"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Client segments a question can target. SegmentAll matches every segment filter.
const (
	SegmentOxbridgePrep      = "oxbridge_prep"
	SegmentElevenPlus        = "11_plus"
	SegmentEliteCorporate    = "elite_corporate"
	SegmentComparisonShopper = "comparison_shopper"
	SegmentAll               = "all"
)

// FAQQuestion is one question/answer pair with its metadata.
// Questions are loaded once from the content file and never mutated.
type FAQQuestion struct {
	ID             string    `json:"id" yaml:"id"`
	Question       string    `json:"question" yaml:"question"`
	Answer         string    `json:"answer" yaml:"answer"`
	AnswerHTML     string    `json:"answerHtml,omitempty" yaml:"-"`
	Category       string    `json:"category" yaml:"category"`
	Subcategory    string    `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Tags           []string  `json:"tags" yaml:"tags"`
	SearchKeywords []string  `json:"searchKeywords,omitempty" yaml:"search_keywords,omitempty"`
	Priority       int       `json:"priority" yaml:"priority"`
	Featured       bool      `json:"featured" yaml:"featured"`
	Difficulty     string    `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	ClientSegment  string    `json:"clientSegment,omitempty" yaml:"client_segment,omitempty"`
	Views          *int64    `json:"views,omitempty" yaml:"views,omitempty"`
	LastUpdated    time.Time `json:"lastUpdated,omitempty" yaml:"last_updated,omitempty"`
}

// FAQCategory groups questions for display. Questions are flattened in
// category order when the search index is built.
type FAQCategory struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int           `json:"order" yaml:"order"`
	Questions   []FAQQuestion `json:"questions" yaml:"questions"`
}

// MatchesSegment reports whether the question applies to the given client segment.
func (q *FAQQuestion) MatchesSegment(segment string) bool {
	if segment == "" {
		return true
	}
	return q.ClientSegment == segment || q.ClientSegment == SegmentAll
}
