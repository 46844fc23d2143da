package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyguide/internal/model"
)

func TestLoad_EmbeddedGuide(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	ids := make([]string, 0, len(g.Sections))
	for _, d := range g.Descriptors() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"overview", "ch2", "ch4", "ch5", "ch6", "ch10", "morrison", "strategy"}, ids)

	ch2, ok := g.Section("ch2")
	require.True(t, ok)
	terms := ch2.Terms()
	require.NotEmpty(t, terms)
	assert.Equal(t, "ch2-persuasion", terms[0].ID)
	assert.True(t, terms[0].Highlighted)
	assert.True(t, terms[0].HasTranslation())

	overview, ok := g.Section("overview")
	require.True(t, ok)
	assert.Empty(t, overview.Terms())
}

func TestLoad_EveryBlockHasOneKind(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)
	for _, s := range g.Sections {
		for i, b := range s.Blocks {
			assert.NotEqual(t, model.BlockUnknown, b.Kind(), "section %s block %d", s.ID, i)
		}
	}
}

func TestLoad_CoercionHasExample(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)
	ch2, _ := g.Section("ch2")
	for _, term := range ch2.Terms() {
		if term.ID == "ch2-coercion" {
			assert.True(t, term.HasExample())
			return
		}
	}
	t.Fatal("ch2-coercion not found")
}

func TestParse_DuplicateTermID(t *testing.T) {
	doc := `
title: Guide
sections:
  - id: a
    label: A
    icon: "1"
    title: First
    blocks:
      - term: {id: dup, term: One, definition: first}
  - id: b
    label: B
    icon: "2"
    title: Second
    blocks:
      - term: {id: dup, term: Two, definition: second}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `term id "dup"`)
}

func TestParse_DuplicateSectionID(t *testing.T) {
	doc := `
title: Guide
sections:
  - {id: a, label: A, icon: "1", title: First, blocks: []}
  - {id: a, label: B, icon: "2", title: Second, blocks: []}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate section id "a"`)
}

func TestParse_BlockWithTwoKinds(t *testing.T) {
	doc := `
title: Guide
sections:
  - id: a
    label: A
    icon: "1"
    title: First
    blocks:
      - heading: Both
        insight: at once
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one kind")
}

func TestParse_MissingDefinition(t *testing.T) {
	doc := `
title: Guide
sections:
  - id: a
    label: A
    icon: "1"
    title: First
    blocks:
      - term: {id: t, term: Term}
`
	_, err := Parse([]byte(doc))
	assert.Error(t, err)
}

func TestParse_UnknownField(t *testing.T) {
	doc := `
title: Guide
colour: red
sections:
  - {id: a, label: A, icon: "1", title: First, blocks: []}
`
	_, err := Parse([]byte(doc))
	assert.Error(t, err)
}
