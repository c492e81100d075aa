package search

import "tutorsite/internal/models"

// Page is a bounded window over a ranked result list.
type Page struct {
	Results []models.ScoredResult
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// Paginate returns the window [offset, offset+limit) of results. A
// non-positive limit defaults to DefaultMaxResults.
func Paginate(results []models.ScoredResult, limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if offset < 0 {
		offset = 0
	}

	total := len(results)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return Page{
		Results: results[offset:end],
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: end < total,
	}
}
