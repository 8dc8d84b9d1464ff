package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/nirbachon-chaos/internal/core"
	"github.com/vovakirdan/nirbachon-chaos/internal/storage"
)

// Journal browser layout constants
const (
	journalMinTextWidth = 20
	journalMaxLines     = 200
)

// JournalSource is the read side of the flavor journal.
type JournalSource interface {
	Lines(kind storage.Kind, actionID string, limit int) ([]storage.Line, error)
	RecentLines(limit int) ([]storage.Line, error)
}

// journalTab filters the browser by kind. The zero value shows every kind.
type journalTab struct {
	title string
	kind  storage.Kind
}

var journalTabs = []journalTab{
	{title: "All"},
	{title: "News", kind: storage.KindNews},
	{title: "Dialogue", kind: storage.KindDialogue},
}

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next kind"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev kind"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing journaled flavor lines.
type JournalModel struct {
	source   JournalSource
	tab      int
	lines    []storage.Line
	loadErr  error
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	quitting bool
}

// NewJournalModel creates a journal browser.
func NewJournalModel(source JournalSource, width, height int) JournalModel {
	m := JournalModel{
		source: source,
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized to the window.
func (m *JournalModel) createTable() table.Model {
	// id, kind, actor, action and saved columns plus borders
	textWidth := core.Max(m.width-4-8-10-10-14-12, journalMinTextWidth)
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Kind", Width: 8},
		{Title: "Actor", Width: 10},
		{Title: "Action", Width: 14},
		{Title: "Text", Width: textWidth},
		{Title: "Saved", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the lines for the current tab.
func (m *JournalModel) load() {
	m.lines, m.loadErr = nil, nil
	if m.source != nil {
		tab := journalTabs[m.tab]
		if tab.kind == "" {
			m.lines, m.loadErr = m.source.RecentLines(journalMaxLines)
		} else {
			m.lines, m.loadErr = m.source.Lines(tab.kind, "", journalMaxLines)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded lines.
func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.lines))
	for i, l := range m.lines {
		actor := l.ActorID
		if actor == "" {
			actor = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", l.ID),
			string(l.Kind),
			actor,
			l.ActionID,
			strings.ReplaceAll(l.Text, "\n", " "),
			humanize.Time(l.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(journalTabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(journalTabs) - 1) % len(journalTabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	tabs := make([]string, len(journalTabs))
	for i, t := range journalTabs {
		if i == m.tab {
			tabs[i] = selectedStyle.Padding(0, 1).Render(t.title)
		} else {
			tabs[i] = dimStyle.Render(" " + t.title + " ")
		}
	}
	b.WriteString(titleStyle.Render("FLAVOR JOURNAL"))
	b.WriteString("  ")
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(colorStyles[core.ColorRed].Render("journal unavailable: " + m.loadErr.Error()))
	case len(m.lines) == 0:
		b.WriteString(dimStyle.Italic(true).Padding(1, 2).Render("Nothing journaled yet.\nPlay with a live provider to collect lines."))
	default:
		b.WriteString(panelStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Tab returns the title of the active kind filter.
func (m JournalModel) Tab() string {
	return journalTabs[m.tab].title
}

// RunJournal runs the journal browser.
func RunJournal(source JournalSource, width, height int) error {
	p := tea.NewProgram(NewJournalModel(source, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
