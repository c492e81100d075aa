package search

import (
	"errors"
	"testing"

	"tutorsite/internal/models"
)

func TestBuildIndex_PreservesOrderAndLength(t *testing.T) {
	qs := richQuestions()
	idx, err := BuildIndex(qs)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	if idx.Len() != len(qs) {
		t.Fatalf("Len() = %d, want %d", idx.Len(), len(qs))
	}
	for i, e := range idx.Entries() {
		if e.ID != qs[i].ID {
			t.Errorf("entry %d ID = %q, want %q", i, e.ID, qs[i].ID)
		}
		if e.Position != i {
			t.Errorf("entry %d Position = %d, want %d", i, e.Position, i)
		}
	}
}

func TestBuildIndex_SearchableText(t *testing.T) {
	idx := mustIndex([]models.FAQQuestion{
		{ID: "a", Question: "Who Are You?", Answer: "A Tutoring Company", Category: "About", Tags: []string{"Team", "History"}},
	})

	e := idx.Entries()[0]
	want := "who are you? a tutoring company about team history"
	if e.SearchableText != want {
		t.Errorf("SearchableText = %q, want %q", e.SearchableText, want)
	}
	if e.QuestionText != "who are you?" {
		t.Errorf("QuestionText = %q, want %q", e.QuestionText, "who are you?")
	}
}

func TestBuildIndex_Empty(t *testing.T) {
	idx, err := BuildIndex(nil)
	if err != nil {
		t.Fatalf("BuildIndex(nil) error = %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestBuildIndex_Validation(t *testing.T) {
	tests := []struct {
		name      string
		questions []models.FAQQuestion
		wantIndex int
		wantField string
	}{
		{
			name: "missing question",
			questions: []models.FAQQuestion{
				{ID: "1", Question: "Q", Answer: "A"},
				{ID: "2", Question: "  ", Answer: "A"},
			},
			wantIndex: 1,
			wantField: "question",
		},
		{
			name:      "missing answer",
			questions: []models.FAQQuestion{{ID: "1", Question: "Q"}},
			wantIndex: 0,
			wantField: "answer",
		},
		{
			name:      "missing id",
			questions: []models.FAQQuestion{{Question: "Q", Answer: "A"}},
			wantIndex: 0,
			wantField: "id",
		},
		{
			name: "duplicate id",
			questions: []models.FAQQuestion{
				{ID: "1", Question: "Q", Answer: "A"},
				{ID: "2", Question: "Q", Answer: "A"},
				{ID: "1", Question: "Q", Answer: "A"},
			},
			wantIndex: 2,
			wantField: "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildIndex(tt.questions)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("BuildIndex() error = %v, want *ValidationError", err)
			}
			if verr.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", verr.Index, tt.wantIndex)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestBuildIndex_DuplicateIDIsWrapped(t *testing.T) {
	_, err := BuildIndex([]models.FAQQuestion{
		{ID: "x", Question: "Q", Answer: "A"},
		{ID: "x", Question: "Q", Answer: "A"},
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
}

func TestIndex_LookupAndStats(t *testing.T) {
	idx := mustIndex(richQuestions())

	e, ok := idx.Lookup("oxb-1")
	if !ok || e.Category != "programmes" {
		t.Fatalf("Lookup(oxb-1) = %v, %v", e, ok)
	}
	if _, ok := idx.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	stats := idx.Stats()
	if stats.QuestionCount != 4 {
		t.Errorf("QuestionCount = %d, want 4", stats.QuestionCount)
	}
	if stats.CategoryCount != 3 {
		t.Errorf("CategoryCount = %d, want 3", stats.CategoryCount)
	}
	if stats.CategoryDistribution["programmes"] != 2 {
		t.Errorf("programmes = %d, want 2", stats.CategoryDistribution["programmes"])
	}
	if stats.DifficultyDistribution[models.DifficultyBasic] != 2 {
		t.Errorf("basic = %d, want 2", stats.DifficultyDistribution[models.DifficultyBasic])
	}
	if stats.Version != IndexVersion {
		t.Errorf("Version = %q, want %q", stats.Version, IndexVersion)
	}
}
