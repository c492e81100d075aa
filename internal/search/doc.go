// Package search implements FAQ search: a read-only index built once from the
// loaded questions, a substring/word-overlap matcher, a debounced query
// controller and the pieces used to render results.
//
// Scoring: an exact substring match of the whole query scores 100, plus 50 when
// the match is inside the question text. Entries that miss the substring test
// score 30 × (matched words / query words) when fuzzy matching is enabled.
// Results are ordered by score, ties keeping content order.
package search
