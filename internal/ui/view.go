package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/wordwrap"

	"studyguide/internal/model"
	"studyguide/internal/text"
	"studyguide/internal/text/stats"
)

func (m UiModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderWithDialog(m.renderHelpDialog())
	}
	return m.renderMainContent()
}

func (m UiModel) renderMainContent() string {
	body := m.viewport.View()
	if m.nav.State().SidebarOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), body)
	}

	style := statusStyle
	if m.statusErr {
		style = statusErrStyle
	}
	status := style.Width(m.width).MaxWidth(m.width).Render(m.statusLine())

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, status)
}

func (m UiModel) renderHeader() string {
	toggle := "◁"
	if !m.nav.State().SidebarOpen {
		toggle = "▷"
	}
	left := toggle + "  " + m.search.View()
	right := printButtonStyle.Render("Print (p)") + " " + exportButtonStyle.Render("Export (e)")

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return headerStyle.Width(m.width).MaxWidth(m.width).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (m UiModel) renderSidebar() string {
	inner := sidebarWidth - 3 // padding and right border
	counts := m.deps.Progress.Counts()

	lines := []string{
		courseStyle.Render(m.deps.Guide.Title),
		courseSubStyle.Render(m.deps.Guide.Subtitle),
		"",
		fmt.Sprintf("%s %d  %s %d",
			reviewedOnStyle.Render("✓"), counts.Reviewed,
			favoriteOnStyle.Render("★"), counts.Favorited),
		"",
	}
	active := m.nav.ActiveIndex()
	for i, d := range m.nav.Sections() {
		label := fmt.Sprintf("%d %s %s", i+1, d.Icon, d.Label)
		if i == active {
			lines = append(lines, activeSectionStyle.Width(inner).Render(label))
		} else {
			lines = append(lines, sectionStyle.Width(inner).Render(label))
		}
	}
	if m.deps.Guide.Author != "" {
		lines = append(lines, "", courseSubStyle.Width(inner).Render(m.deps.Guide.Author))
	}

	return sidebarStyle.
		Width(sidebarWidth - 1).
		Height(m.viewport.Height).
		MaxHeight(m.viewport.Height).
		Render(strings.Join(lines, "\n"))
}

// renderSection lays out the active section for the viewport and reports the
// first and one-past-last line of every term card.
func (m UiModel) renderSection(width int) (string, []int, []int) {
	var (
		parts         []string
		lines         int
		tops, bottoms []int
	)
	add := func(s string) {
		parts = append(parts, s)
		lines += lipgloss.Height(s)
	}

	s := m.view.section
	if s.Number != "" {
		add(numberStyle.Render(strings.ToUpper(s.Number)))
	}
	add(titleStyle.Render(s.Title))
	if s.Subtitle != "" {
		add(subtitleStyle.Render(wordwrap.String(s.Subtitle, width)))
	}

	term := 0
	for _, b := range s.Blocks {
		switch b.Kind() {
		case model.BlockHeading:
			add(headingStyle.Render(b.Heading))
		case model.BlockText:
			add(textStyle.Render(wordwrap.String(b.Text, width)))
		case model.BlockInsight:
			add(renderInsight(b.Insight, width))
		case model.BlockTerm:
			tops = append(tops, lines)
			add(m.renderCard(*b.Term, term == m.view.cursor, width))
			bottoms = append(bottoms, lines)
			term++
		case model.BlockTable:
			add(renderTable(*b.Table, width))
		case model.BlockDiagram:
			add(renderDiagram(*b.Diagram, width))
		case model.BlockFlow:
			add(flowStyle.Width(width).Align(lipgloss.Center).Render("↓"))
		case model.BlockFacts:
			add(renderFacts(b.Facts, width))
		case model.BlockCards:
			add(renderTiles(b.Cards, width))
		}
	}
	return strings.Join(parts, "\n"), tops, bottoms
}

func (m UiModel) renderCard(t model.TermEntry, focused bool, width int) string {
	query := m.nav.State().SearchTerm
	inner := max(width-4, 10) // border and padding
	expanded := m.view.expanded[t.ID]

	title := highlight(t.Term, query, termStyle)
	if t.Highlighted {
		title = dotStyle.Render("●") + " " + title
	}

	fav := markOffStyle.Render("☆")
	if m.deps.Progress.Favorited(t.ID) {
		fav = favoriteOnStyle.Render("★")
	}
	rev := markOffStyle.Render("○")
	if m.deps.Progress.Reviewed(t.ID) {
		rev = reviewedOnStyle.Render("✓")
	}
	toggle := "+"
	if expanded {
		toggle = "−"
	}
	marks := fav + " " + rev + " " + toggle

	gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(marks))
	body := []string{title + strings.Repeat(" ", gap) + marks}
	if expanded {
		body = append(body, wordwrap.String(highlight(t.Definition, query, definitionStyle), inner))
		if t.HasTranslation() {
			body = append(body, wordwrap.String(highlight(t.Translation, query, translationStyle), inner))
		}
		if t.HasExample() {
			body = append(body, wordwrap.String(exampleStyle.Render("↳ ")+highlight(t.Example, query, exampleStyle), inner))
		}
	}

	style := cardStyle
	if focused {
		style = focusedCardStyle
	}
	if m.deps.Progress.Reviewed(t.ID) {
		style = style.Faint(true)
	}
	return style.Width(width - 2).Render(strings.Join(body, "\n"))
}

func renderInsight(s string, width int) string {
	return insightStyle.Width(width - 1).Render(
		wordwrap.String(insightLabelStyle.Render("Key →")+" "+s, width-3))
}

func renderTable(t model.Table, width int) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers(t.Headers...).
		Rows(t.Rows...).
		Width(width).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Render()
}

func renderDiagram(d model.Diagram, width int) string {
	items := make([]string, 0, len(d.Items)+1)
	if d.Title != "" {
		items = append(items, diagramTitleStyle.Render(d.Title))
	}
	for _, it := range d.Items {
		items = append(items, wordwrap.String("• "+it, width-4))
	}
	return tileStyle.Width(width - 2).Render(strings.Join(items, "\n"))
}

func renderFacts(facts []model.Fact, width int) string {
	rows := make([]string, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, wordwrap.String(factLabelStyle.Render(f.Label+":")+" "+f.Text, width))
	}
	return strings.Join(rows, "\n")
}

// renderTiles places cards two per row.
func renderTiles(cards []model.Card, width int) string {
	tile := max((width/2)-2, 10)
	var rows, row []string
	for i, c := range cards {
		lines := []string{tileLabelStyle.Render(strings.ToUpper(c.Label))}
		if c.Title != "" {
			lines = append(lines, titleStyle.Render(c.Title))
		}
		if c.Text != "" {
			lines = append(lines, wordwrap.String(c.Text, tile-4))
		}
		row = append(row, tileStyle.Width(tile).Render(strings.Join(lines, "\n")))
		if len(row) == 2 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return strings.Join(rows, "\n")
}

func (m UiModel) renderHelpDialog() string {
	keys := [][2]string{
		{"1-9, tab, shift+tab", "switch section"},
		{"j/k, up/down", "move between terms"},
		{"enter, space", "expand or collapse"},
		{"r", "mark reviewed"},
		{"f", "mark favorite"},
		{"c", "copy term"},
		{"/", "search, esc clears"},
		{"n, N", "next or previous match"},
		{"b", "toggle sidebar"},
		{"p", "print section"},
		{"e", "export progress"},
		{"q", "quit"},
	}
	rows := make([]string, 0, len(keys)+2)
	rows = append(rows, titleStyle.Render("Keys"), "")
	for _, k := range keys {
		rows = append(rows, fmt.Sprintf("%-22s %s", k[0], k[1]))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))
}

func (m UiModel) renderWithDialog(dialog string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

// highlight renders s with every query match marked, the rest in base.
func highlight(s, query string, base lipgloss.Style) string {
	return text.Render(text.Highlight(s, query), styler(matchStyle), styler(base))
}

func styler(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

func completion(s model.Section, p Progress) stats.Completion {
	return stats.SectionCompletion(s, p.Reviewed, p.Favorited)
}

func matches(s model.Section, query string) int {
	return stats.SearchMatches(s, query)
}
