package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"studyguide/internal/model"
	"studyguide/internal/nav"
	"studyguide/internal/printer"
	"studyguide/internal/progress"
	"studyguide/internal/text"
	"studyguide/internal/text/stats"
)

const (
	headerHeight = 2 // search line + bottom border
	statusHeight = 1
	sidebarWidth = 30
	printWidth   = 80
)

// Progress is the subset of the progress store the shell works with.
type Progress interface {
	Reviewed(id string) bool
	Favorited(id string) bool
	ToggleReviewed(id string) bool
	ToggleFavorite(id string) bool
	Counts() progress.Counts
}

type Exporter interface {
	Export() (string, error)
}

type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard copies to the host clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(s string) error { return clipboard.WriteAll(s) }

// Deps are the collaborators the shell needs. Guide, Progress and Exporter
// are required.
type Deps struct {
	Guide     *model.Guide
	Progress  Progress
	Exporter  Exporter
	Printer   printer.Printer
	Clipboard Clipboard
	Log       *zap.Logger

	InitialSection string
	Sidebar        bool
	WrapWidth      int
}

// sectionView is the per-section part of the screen state. It is replaced
// whenever another section becomes active, so expansion never leaks across.
type sectionView struct {
	section  model.Section
	terms    []model.TermEntry
	cursor   int
	expanded map[string]bool
}

func newSectionView(s model.Section) sectionView {
	return sectionView{section: s, terms: s.Terms(), expanded: map[string]bool{}}
}

func (v sectionView) focused() (model.TermEntry, bool) {
	if v.cursor < 0 || v.cursor >= len(v.terms) {
		return model.TermEntry{}, false
	}
	return v.terms[v.cursor], true
}

type UiModel struct {
	deps Deps
	nav  *nav.Navigator
	view sectionView

	search    textinput.Model
	searching bool
	viewport  viewport.Model
	showHelp  bool

	width, height int
	ready         bool

	status    string
	statusErr bool

	// first rendered line of every term card, filled by refresh
	cardTop    []int
	cardBottom []int
}

func InitialModel(deps Deps) UiModel {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = SystemClipboard{}
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search terms..."
	ti.CharLimit = 64
	ti.Width = 32

	m := UiModel{
		deps:     deps,
		nav:      nav.New(deps.Guide.Descriptors(), deps.InitialSection),
		search:   ti,
		viewport: viewport.New(0, 0),
	}
	if !deps.Sidebar {
		m.nav.ToggleSidebar()
	}
	m.activate()
	return m
}

func (m UiModel) Init() tea.Cmd {
	return nil
}

func (m UiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "enter", "q":
				m.showHelp = false
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m UiModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.searching = false
		m.nav.SetSearch("")
		m.refresh()
		return m, nil
	case "enter":
		m.search.Blur()
		m.searching = false
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.nav.SetSearch(text.NormalizeQuery(m.search.Value()))
	m.refresh()
	return m, cmd
}

func (m UiModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusErr = "", false

	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "esc":
		if m.nav.State().SearchTerm != "" {
			m.search.SetValue("")
			m.nav.SetSearch("")
			m.refresh()
		}
	case "b":
		m.nav.ToggleSidebar()
		m.refresh()
	case "tab", "right", "l":
		m.nav.Next()
		m.activate()
	case "shift+tab", "left", "h":
		m.nav.Prev()
		m.activate()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if sections := m.nav.Sections(); i < len(sections) {
			m.nav.SetActive(sections[i].ID)
			m.activate()
		}
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown", "ctrl+d":
		m.viewport.HalfViewDown()
	case "pgup", "ctrl+u":
		m.viewport.HalfViewUp()
	case "g", "home":
		m.view.cursor = 0
		m.viewport.GotoTop()
		m.refresh()
	case "enter", " ":
		if t, ok := m.view.focused(); ok {
			m.view.expanded[t.ID] = !m.view.expanded[t.ID]
			m.refresh()
		}
	case "r":
		if t, ok := m.view.focused(); ok {
			if m.deps.Progress.ToggleReviewed(t.ID) {
				m.setStatus("Reviewed: " + t.Term)
			} else {
				m.setStatus("Not reviewed: " + t.Term)
			}
			m.refresh()
		}
	case "f":
		if t, ok := m.view.focused(); ok {
			if m.deps.Progress.ToggleFavorite(t.ID) {
				m.setStatus("Favorited: " + t.Term)
			} else {
				m.setStatus("Unfavorited: " + t.Term)
			}
			m.refresh()
		}
	case "n":
		m.jumpToMatch(1)
	case "N":
		m.jumpToMatch(-1)
	case "c":
		m.copyFocused()
	case "p":
		m.print()
	case "e":
		m.export()
	}
	return m, nil
}

// activate loads the active section into a fresh view.
func (m *UiModel) activate() {
	s, ok := m.deps.Guide.Section(m.nav.Active().ID)
	if !ok {
		return
	}
	m.view = newSectionView(s)
	m.viewport.GotoTop()
	m.refresh()
}

func (m *UiModel) moveCursor(delta int) {
	n := len(m.view.terms)
	if n == 0 {
		if delta > 0 {
			m.viewport.LineDown(1)
		} else {
			m.viewport.LineUp(1)
		}
		return
	}
	m.view.cursor = max(0, min(n-1, m.view.cursor+delta))
	m.refresh()
}

// jumpToMatch moves focus to the next term card in dir that matches the search
// term, wrapping around the section.
func (m *UiModel) jumpToMatch(dir int) {
	query := m.nav.State().SearchTerm
	if query == "" {
		return
	}
	ids := stats.MatchingTerms(m.view.section, query)
	if len(ids) == 0 {
		m.setStatus(fmt.Sprintf("No terms match %q", query))
		return
	}

	n := len(m.view.terms)
	for step := 1; step <= n; step++ {
		i := ((m.view.cursor+dir*step)%n + n) % n
		if k := slices.Index(ids, m.view.terms[i].ID); k >= 0 {
			m.view.cursor = i
			m.setStatus(fmt.Sprintf("Match %d of %d", k+1, len(ids)))
			m.refresh()
			return
		}
	}
}

func (m *UiModel) copyFocused() {
	t, ok := m.view.focused()
	if !ok {
		return
	}
	if err := m.deps.Clipboard.WriteAll(t.Term + " — " + t.Definition); err != nil {
		m.deps.Log.Warn("Unable to copy to clipboard", zap.String("term", t.ID), zap.Error(err))
		m.setError("Copy failed: " + err.Error())
		return
	}
	m.setStatus("Copied to clipboard: " + t.Term)
}

func (m *UiModel) print() {
	if m.deps.Printer == nil {
		m.setError("Printing is not configured")
		return
	}
	doc := printer.Render(m.deps.Guide, m.view.section, m.deps.Progress, printWidth)
	where, err := m.deps.Printer.Print(doc)
	if err != nil {
		m.deps.Log.Error("Unable to print section", zap.String("section", m.view.section.ID), zap.Error(err))
		m.setError("Print failed: " + err.Error())
		return
	}
	m.deps.Log.Info("Section printed", zap.String("section", m.view.section.ID), zap.String("destination", where))
	m.setStatus("Sent to " + where)
}

func (m *UiModel) export() {
	path, err := m.deps.Exporter.Export()
	if err != nil {
		m.deps.Log.Error("Unable to export progress", zap.Error(err))
		m.setError("Export failed: " + err.Error())
		return
	}
	m.deps.Log.Info("Progress exported", zap.String("file", path))
	m.setStatus("Exported to " + path)
}

func (m *UiModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *UiModel) setError(s string) {
	m.status, m.statusErr = s, true
}

// refresh re-renders the section into the viewport and scrolls so the
// focused card is visible.
func (m *UiModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = max(1, m.height-headerHeight-statusHeight)

	content, tops, bottoms := m.renderSection(m.viewport.Width)
	m.cardTop, m.cardBottom = tops, bottoms
	m.viewport.SetContent(content)

	if c := m.view.cursor; c < len(tops) {
		top, bottom := tops[c], bottoms[c]
		switch {
		case top < m.viewport.YOffset:
			m.viewport.SetYOffset(top)
		case bottom > m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(min(top, bottom-m.viewport.Height))
		}
	}
}

func (m UiModel) contentWidth() int {
	w := m.width
	if m.nav.State().SidebarOpen {
		w -= sidebarWidth
	}
	if m.deps.WrapWidth > 0 {
		w = min(w, m.deps.WrapWidth)
	}
	return max(w, 20)
}

// statusLine shows the active section, its completion and the match count.
func (m UiModel) statusLine() string {
	d := m.nav.Active()
	c := completion(m.view.section, m.deps.Progress)
	parts := []string{
		fmt.Sprintf("%s %s", d.Icon, d.Label),
		fmt.Sprintf("Reviewed: %d/%d (%.0f%%)", c.Reviewed, c.Total, c.Percent()),
	}
	if q := m.nav.State().SearchTerm; q != "" {
		parts = append(parts, fmt.Sprintf("Matches for %q: %d", q, matches(m.view.section, q)))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	} else {
		parts = append(parts, "? help")
	}
	return strings.Join(parts, " | ")
}
