package model

// TermEntry is one piece of study content. ID is the key progress is stored
// under, so it must stay stable across content revisions. Empty Translation or
// Example means the field is absent.
type TermEntry struct {
	ID          string `yaml:"id" validate:"required"`
	Term        string `yaml:"term" validate:"required"`
	Definition  string `yaml:"definition" validate:"required"`
	Translation string `yaml:"translation,omitempty"`
	Example     string `yaml:"example,omitempty"`
	Highlighted bool   `yaml:"highlight,omitempty"`
}

func (t TermEntry) HasTranslation() bool { return t.Translation != "" }

func (t TermEntry) HasExample() bool { return t.Example != "" }

type SectionDescriptor struct {
	ID    string `yaml:"id" validate:"required"`
	Label string `yaml:"label" validate:"required"`
	Icon  string `yaml:"icon" validate:"required"`
}

type Table struct {
	Headers []string   `yaml:"headers" validate:"min=1"`
	Rows    [][]string `yaml:"rows" validate:"min=1"`
}

type Diagram struct {
	Title string   `yaml:"title" validate:"required"`
	Items []string `yaml:"items" validate:"min=1"`
}

type Fact struct {
	Label string `yaml:"label" validate:"required"`
	Text  string `yaml:"text" validate:"required"`
}

type Card struct {
	Label string `yaml:"label"`
	Title string `yaml:"title" validate:"required"`
	Text  string `yaml:"text"`
}

type BlockKind int

const (
	BlockUnknown BlockKind = iota
	BlockHeading
	BlockText
	BlockInsight
	BlockTerm
	BlockTable
	BlockDiagram
	BlockFlow
	BlockFacts
	BlockCards
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockText:
		return "text"
	case BlockInsight:
		return "insight"
	case BlockTerm:
		return "term"
	case BlockTable:
		return "table"
	case BlockDiagram:
		return "diagram"
	case BlockFlow:
		return "flow"
	case BlockFacts:
		return "facts"
	case BlockCards:
		return "cards"
	}
	return "unknown"
}

// Block is a single piece of section content. Exactly one field is set.
type Block struct {
	Heading string     `yaml:"heading,omitempty"`
	Text    string     `yaml:"text,omitempty"`
	Insight string     `yaml:"insight,omitempty"`
	Term    *TermEntry `yaml:"term,omitempty" validate:"omitempty"`
	Table   *Table     `yaml:"table,omitempty" validate:"omitempty"`
	Diagram *Diagram   `yaml:"diagram,omitempty" validate:"omitempty"`
	Flow    bool       `yaml:"flow,omitempty"`
	Facts   []Fact     `yaml:"facts,omitempty" validate:"dive"`
	Cards   []Card     `yaml:"cards,omitempty" validate:"dive"`
}

// Kinds lists every kind set on the block, in declaration order.
func (b Block) Kinds() []BlockKind {
	var kinds []BlockKind
	if b.Heading != "" {
		kinds = append(kinds, BlockHeading)
	}
	if b.Text != "" {
		kinds = append(kinds, BlockText)
	}
	if b.Insight != "" {
		kinds = append(kinds, BlockInsight)
	}
	if b.Term != nil {
		kinds = append(kinds, BlockTerm)
	}
	if b.Table != nil {
		kinds = append(kinds, BlockTable)
	}
	if b.Diagram != nil {
		kinds = append(kinds, BlockDiagram)
	}
	if b.Flow {
		kinds = append(kinds, BlockFlow)
	}
	if len(b.Facts) > 0 {
		kinds = append(kinds, BlockFacts)
	}
	if len(b.Cards) > 0 {
		kinds = append(kinds, BlockCards)
	}
	return kinds
}

func (b Block) Kind() BlockKind {
	if kinds := b.Kinds(); len(kinds) == 1 {
		return kinds[0]
	}
	return BlockUnknown
}

type Section struct {
	SectionDescriptor `yaml:",inline"`
	Number            string  `yaml:"number"`
	Title             string  `yaml:"title" validate:"required"`
	Subtitle          string  `yaml:"subtitle,omitempty"`
	Blocks            []Block `yaml:"blocks" validate:"dive"`
}

// Terms returns the section's term entries in display order.
func (s Section) Terms() []TermEntry {
	var terms []TermEntry
	for _, b := range s.Blocks {
		if b.Term != nil {
			terms = append(terms, *b.Term)
		}
	}
	return terms
}

type Guide struct {
	Title    string    `yaml:"title" validate:"required"`
	Subtitle string    `yaml:"subtitle"`
	Author   string    `yaml:"author"`
	Sections []Section `yaml:"sections" validate:"min=1,dive"`
}

func (g Guide) Descriptors() []SectionDescriptor {
	out := make([]SectionDescriptor, 0, len(g.Sections))
	for _, s := range g.Sections {
		out = append(out, s.SectionDescriptor)
	}
	return out
}

// Section looks up a section by id.
func (g Guide) Section(id string) (Section, bool) {
	for _, s := range g.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// ProgressMap is the persisted form of one progress mapping: term id to flag.
// Absent ids and false values mean the same thing.
type ProgressMap map[string]bool

// ExportSnapshot is the document written by the export action.
type ExportSnapshot struct {
	Reviewed   []string `json:"reviewed"`
	Favorites  []string `json:"favorites"`
	ExportDate string   `json:"exportDate"`
}
