package listing

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Summary is the list-level view of a venue or artist.
type Summary struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	UpcomingShowsCount int    `json:"num_upcoming_shows"`
}

// SearchResult holds the matches of a name search.
type SearchResult struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}

// nameMatcher performs case-insensitive substring matching using Unicode case folding.
type nameMatcher struct {
	caser  cases.Caser
	needle string
}

func newNameMatcher(term string) *nameMatcher {
	caser := cases.Fold()
	return &nameMatcher{caser: caser, needle: caser.String(term)}
}

func (m *nameMatcher) Match(name string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.caser.String(name), m.needle)
}

// matchByName keeps the items whose name contains term, ignoring case.
func matchByName[T any](items []T, term string, name func(T) string) []T {
	m := newNameMatcher(term)
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if m.Match(name(item)) {
			matched = append(matched, item)
		}
	}
	return matched
}

// buildSearchResult summarizes matches in ascending id order.
func buildSearchResult[T any](matched []T, summarize func(T) Summary) SearchResult {
	result := SearchResult{
		Count: len(matched),
		Data:  make([]Summary, 0, len(matched)),
	}
	for _, item := range matched {
		result.Data = append(result.Data, summarize(item))
	}
	sort.Slice(result.Data, func(i, j int) bool {
		return result.Data[i].ID < result.Data[j].ID
	})
	return result
}
