package domain

import "strings"

// Visible computes the ordered subset of notes the list should show,
// given the free-text query and the active category filter. Pure
// function: the input slice is never mutated and cache order is
// preserved for ties.
//
// Rules:
//   - empty query: a note is visible when no category filter is active
//     or its category matches the filter
//   - non-empty query: substring match (case-insensitive) against
//     title, any tag, or content. The category filter is ignored —
//     search is global across categories.
//
// Filtering and match-priority ordering share a single predicate. Keep
// it that way: if they ever diverge, non-matching notes would start
// leaking into the tail of search results.
func Visible(notes []*Note, query, category string) []*Note {
	query = strings.ToLower(query)

	visible := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if query == "" {
			if category == "" || n.Category == category {
				visible = append(visible, n)
			}
			continue
		}
		if MatchesQuery(n, query) {
			visible = append(visible, n)
		}
	}
	return visible
}

// MatchesQuery reports whether the lowercased query is a substring of
// the note's title, any tag, or content. The query must already be
// lowercased by the caller. Category names are deliberately not a
// search field.
func MatchesQuery(n *Note, query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(n.Content), query)
}

// MatchingTags returns the note's tags that contain the query,
// lowercased comparison. Presentation uses this for tag highlighting;
// it is a projection, never stored.
func MatchingTags(n *Note, query string) []string {
	if query == "" {
		return nil
	}
	query = strings.ToLower(query)

	var matched []string
	for _, tag := range n.Tags {
		if tag != "" && strings.Contains(strings.ToLower(tag), query) {
			matched = append(matched, tag)
		}
	}
	return matched
}
