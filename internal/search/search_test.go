package search

import "tutorsite/internal/models"

func sampleQuestions() []models.FAQQuestion {
	return []models.FAQQuestion{
		{ID: "1", Question: "How do I book a tutor?", Answer: "Use the enquiry form.", Category: "booking", Tags: []string{}},
		{ID: "2", Question: "What subjects are offered?", Answer: "All GCSE and A-level subjects.", Category: "subjects", Tags: []string{}},
	}
}

func richQuestions() []models.FAQQuestion {
	return []models.FAQQuestion{
		{
			ID: "book-1", Question: "How do I book a tutor?", Answer: "Complete the enquiry form and we call you back.",
			Category: "booking", Tags: []string{"enquiry"}, SearchKeywords: []string{"booking process"},
			Difficulty: models.DifficultyBasic, ClientSegment: models.SegmentAll, Featured: true,
		},
		{
			ID: "fees-1", Question: "What are your fees?", Answer: "Fees depend on the tutor tier you book.",
			Category: "pricing", Tags: []string{"fees", "pricing"}, SearchKeywords: []string{"tutor fees"},
			Difficulty: models.DifficultyBasic, ClientSegment: models.SegmentComparisonShopper,
		},
		{
			ID: "oxb-1", Question: "Do you prepare students for Oxbridge interviews?", Answer: "Yes, our interview coaching covers every college.",
			Category: "programmes", Tags: []string{"oxbridge", "interviews"},
			Difficulty: models.DifficultyAdvanced, ClientSegment: models.SegmentOxbridgePrep,
		},
		{
			ID: "11p-1", Question: "When should 11+ preparation start?", Answer: "Most families start a year ahead of the exam.",
			Category: "programmes", Tags: []string{"11 plus", "exam"},
			Difficulty: models.DifficultyIntermediate, ClientSegment: models.SegmentElevenPlus,
		},
	}
}

func mustIndex(qs []models.FAQQuestion) *Index {
	idx, err := BuildIndex(qs)
	if err != nil {
		panic(err)
	}
	return idx
}

func ids(results []models.ScoredResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Entry.ID
	}
	return out
}
