package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight_EmptyQueryReturnsTextUnsegmented(t *testing.T) {
	for _, in := range []string{"", "Persuasion", "상징적 과정", "  spaced  "} {
		got := Highlight(in, "")
		require.Len(t, got, 1)
		assert.Equal(t, Segment{Text: in}, got[0])
	}
}

func TestHighlight_EmptyText(t *testing.T) {
	assert.Equal(t, []Segment{{Text: ""}}, Highlight("", "persu"))
}

func TestHighlight_CaseInsensitive(t *testing.T) {
	got := Highlight("Persuasion", "persu")
	assert.Equal(t, []Segment{
		{Text: "Persu", Match: true},
		{Text: "asion"},
	}, got)

	got = Highlight("self-PERSUASION works", "Persuasion")
	assert.Equal(t, []Segment{
		{Text: "self-"},
		{Text: "PERSUASION", Match: true},
		{Text: " works"},
	}, got)
}

func TestHighlight_MultipleMatchesKeepOrder(t *testing.T) {
	got := Highlight("Attitude toward attitudes", "attitude")
	assert.Equal(t, []Segment{
		{Text: "Attitude", Match: true},
		{Text: " toward "},
		{Text: "attitude", Match: true},
		{Text: "s"},
	}, got)
}

func TestHighlight_NonOverlapping(t *testing.T) {
	got := Highlight("aaaa", "aa")
	assert.Equal(t, []Segment{
		{Text: "aa", Match: true},
		{Text: "aa", Match: true},
	}, got)
	assert.Equal(t, 2, CountMatches("aaaaa", "aa"))
}

func TestHighlight_QueryIsLiteral(t *testing.T) {
	for _, q := range []string{"(", ".*", "a|b", "[x", "\\"} {
		assert.NotPanics(t, func() { Highlight("a (b) .* a|b [x \\", q) })
	}
	assert.Equal(t, 0, CountMatches("abc", ".*"))
	assert.Equal(t, 1, CountMatches("see (a) here", "(a)"))
}

func TestHighlight_Completeness(t *testing.T) {
	cases := []struct{ text, query string }{
		{"Persuasion is a symbolic process", "s"},
		{"Valence vs. Arousal", "A"},
		{"강압: 믿을 만한 위협", "위협"},
		{"Ελληνικά ΣΊΣΥΦΟΣ", "σίσυφος"},
		{"no match here", "zzz"},
		{"x", "longer than text"},
		{"↳ example ↳", "↳"},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.text, Render(Highlight(tc.text, tc.query), nil, nil))
		})
	}
}

func TestHighlight_Unicode(t *testing.T) {
	got := Highlight("태도: 대상에 대한 평가", "대상")
	assert.Equal(t, []Segment{
		{Text: "태도: "},
		{Text: "대상", Match: true},
		{Text: "에 대한 평가"},
	}, got)
}

func TestHighlight_DoesNotShareState(t *testing.T) {
	a := Highlight("Coercion and coercion", "coercion")
	b := Highlight("Coercion and coercion", "coercion")
	assert.Equal(t, a, b)
	a[0].Text = "changed"
	assert.Equal(t, "Coercion", b[0].Text)
}

func TestRender(t *testing.T) {
	mark := func(s string) string { return "[" + s + "]" }
	plain := func(s string) string { return "<" + s + ">" }

	assert.Equal(t, "Free [Choice]", Render(Highlight("Free Choice", "choice"), mark, nil))
	assert.Equal(t, "<Free >[Choice]", Render(Highlight("Free Choice", "choice"), mark, plain))
	assert.Equal(t, "<Free Choice>", Render(Highlight("Free Choice", ""), mark, plain))
	assert.Equal(t, "Free Choice", Render(Highlight("Free Choice", "choice"), nil, nil))
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "elm", NormalizeQuery("  elm \t"))
	assert.True(t, HasMatch("ELM route", NormalizeQuery(" elm ")))
}
