package text

import (
	"strings"
	"unicode"
)

// Segment is a run of text that either matches the search query or does not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into alternating matched and unmatched segments. The
// query is literal text matched case-insensitively, left to right, without
// overlaps. Concatenating the segments always gives back text.
func Highlight(text, query string) []Segment {
	if text == "" || query == "" {
		return []Segment{{Text: text}}
	}

	var (
		segments []Segment
		plain    strings.Builder
		tr       = []rune(text)
		qr       = []rune(query)
	)
	for i := 0; i < len(tr); {
		if i+len(qr) <= len(tr) && equalFold(tr[i:i+len(qr)], qr) {
			if plain.Len() > 0 {
				segments = append(segments, Segment{Text: plain.String()})
				plain.Reset()
			}
			segments = append(segments, Segment{Text: string(tr[i : i+len(qr)]), Match: true})
			i += len(qr)
			continue
		}
		plain.WriteRune(tr[i])
		i++
	}
	if plain.Len() > 0 || len(segments) == 0 {
		segments = append(segments, Segment{Text: plain.String()})
	}
	return segments
}

// CountMatches returns how many non-overlapping matches Highlight would mark.
func CountMatches(text, query string) int {
	n := 0
	for _, s := range Highlight(text, query) {
		if s.Match {
			n++
		}
	}
	return n
}

func HasMatch(text, query string) bool {
	return CountMatches(text, query) > 0
}

// Render joins segments, passing matched runs through mark and the rest
// through plain. A nil function leaves its runs as they are.
func Render(segments []Segment, mark, plain func(string) string) string {
	var sb strings.Builder
	for _, s := range segments {
		f := plain
		if s.Match {
			f = mark
		}
		if f == nil {
			sb.WriteString(s.Text)
			continue
		}
		sb.WriteString(f(s.Text))
	}
	return sb.String()
}

// NormalizeQuery trims the raw search box value.
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}

func equalFold(a, b []rune) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !foldEq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// foldEq reports whether r and s are equal under simple Unicode case folding.
func foldEq(r, s rune) bool {
	if unicode.ToLower(r) == unicode.ToLower(s) {
		return true
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f == s {
			return true
		}
	}
	return false
}
