package printer

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"studyguide/internal/model"
)

// Flags answers whether a term is marked.
type Flags interface {
	Favorited(id string) bool
}

// Render lays out a section for paper: no navigation, every term expanded,
// reviewed terms printed like any other, favorites starred.
func Render(guide *model.Guide, section model.Section, flags Flags, width int) []byte {
	if width < 20 {
		width = 80
	}
	w := &writer{width: width}

	w.line(strings.TrimSpace(guide.Title + " · " + guide.Subtitle))
	w.blank()
	if section.Number != "" {
		w.line(strings.ToUpper(section.Number))
	}
	w.line(section.Title)
	if section.Subtitle != "" {
		w.wrap(section.Subtitle, 0)
	}
	w.line(strings.Repeat("=", min(width, runewidth.StringWidth(section.Title)+4)))

	for _, b := range section.Blocks {
		switch b.Kind() {
		case model.BlockHeading:
			w.blank()
			w.line(b.Heading)
			w.line(strings.Repeat("-", runewidth.StringWidth(b.Heading)))
		case model.BlockText:
			w.blank()
			w.wrap(b.Text, 0)
		case model.BlockInsight:
			w.blank()
			w.wrap("Key → "+b.Insight, 2)
		case model.BlockTerm:
			w.blank()
			w.term(*b.Term, flags != nil && flags.Favorited(b.Term.ID))
		case model.BlockTable:
			w.blank()
			w.table(*b.Table)
		case model.BlockDiagram:
			w.blank()
			w.line("[" + b.Diagram.Title + "]")
			for _, item := range b.Diagram.Items {
				w.wrap("- "+item, 2)
			}
		case model.BlockFlow:
			w.line("    ↓")
		case model.BlockFacts:
			w.blank()
			for _, f := range b.Facts {
				w.wrap(f.Label+": "+f.Text, 0)
			}
		case model.BlockCards:
			for _, c := range b.Cards {
				w.blank()
				w.line(strings.TrimSpace(strings.ToUpper(c.Label) + "  " + c.Title))
				if c.Text != "" {
					w.wrap(c.Text, 2)
				}
			}
		}
	}
	if guide.Author != "" {
		w.blank()
		w.line(guide.Author)
	}
	return []byte(w.sb.String())
}

type writer struct {
	sb    strings.Builder
	width int
}

func (w *writer) line(s string) {
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *writer) blank() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.sb.WriteByte('\n')
	}
}

func (w *writer) wrap(s string, pad uint) {
	wrapped := wordwrap.String(s, w.width-int(pad))
	if pad > 0 {
		wrapped = indent.String(wrapped, pad)
	}
	w.line(wrapped)
}

func (w *writer) term(t model.TermEntry, favorite bool) {
	mark := "•"
	if favorite {
		mark = "★"
	}
	w.line(mark + " " + t.Term)
	w.wrap(t.Definition, 2)
	if t.HasTranslation() {
		w.wrap(t.Translation, 2)
	}
	if t.HasExample() {
		w.wrap("↳ "+t.Example, 2)
	}
}

func (w *writer) table(t model.Table) {
	widths := make([]int, len(t.Headers))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	format := func(row []string) string {
		cells := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		return strings.TrimRight(strings.Join(cells, " | "), " ")
	}

	w.line(format(t.Headers))
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	w.line(strings.Join(rule, "-+-"))
	for _, row := range t.Rows {
		w.line(format(row))
	}
}

