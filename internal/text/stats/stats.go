package stats

import (
	"studyguide/internal/model"
	"studyguide/internal/text"
)

// Completion describes how far a section has been worked through.
type Completion struct {
	Total     int
	Reviewed  int
	Favorited int
}

func (c Completion) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Reviewed) / float64(c.Total) * 100
}

// SectionCompletion counts the section's terms against the given flags.
func SectionCompletion(section model.Section, reviewed, favorited func(id string) bool) Completion {
	var c Completion
	for _, term := range section.Terms() {
		c.Total++
		if reviewed != nil && reviewed(term.ID) {
			c.Reviewed++
		}
		if favorited != nil && favorited(term.ID) {
			c.Favorited++
		}
	}
	return c
}

// SearchMatches counts query matches across every searchable field of the
// section's terms.
func SearchMatches(section model.Section, query string) int {
	if query == "" {
		return 0
	}
	n := 0
	for _, term := range section.Terms() {
		for _, field := range []string{term.Term, term.Definition, term.Translation, term.Example} {
			n += text.CountMatches(field, query)
		}
	}
	return n
}

// MatchingTerms returns the ids of terms with at least one match, in order.
func MatchingTerms(section model.Section, query string) []string {
	if query == "" {
		return nil
	}
	var ids []string
	for _, term := range section.Terms() {
		if text.HasMatch(term.Term, query) || text.HasMatch(term.Definition, query) ||
			text.HasMatch(term.Translation, query) || text.HasMatch(term.Example, query) {
			ids = append(ids, term.ID)
		}
	}
	return ids
}
