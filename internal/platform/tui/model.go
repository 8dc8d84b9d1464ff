package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nirbachon-chaos/internal/config"
	"github.com/vovakirdan/nirbachon-chaos/internal/core"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
)

// Options configures the TUI.
type Options struct {
	Controller   *game.Controller
	Config       config.Config
	Runtime      core.RuntimeConfig
	ProviderName string
	Logger       *log.Logger // nil discards logs
}

// voteMarker is a transient "+150" shown after a manual vote.
type voteMarker struct {
	id int
}

// Model is the Bubble Tea model for the game. It reads everything it shows
// from the controller's status and sends every intent to the controller.
type Model struct {
	ctrl     *game.Controller
	cfg      config.Config
	provider string
	logger   *log.Logger

	keys    KeyMap
	mapper  *KeyMapper
	help    help.Model
	spinner spinner.Model

	status     game.Status
	cursor     int
	modal      string // ally id of the open deal modal, "" when closed
	markers    []voteMarker
	nextMarker int
	briefing   string

	width    int
	height   int
	quitting bool
}

// NewModel creates a model bound to a controller.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rate := opts.Runtime.RefreshRate
	if rate <= 0 {
		rate = core.DefaultConfig().RefreshRate
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Spinner{
		Frames: spinner.Dot.Frames,
		FPS:    time.Second / time.Duration(rate),
	}))
	sp.Style = colorStyles[core.ColorMagenta]

	keys := DefaultKeyMap()
	m := Model{
		ctrl:     opts.Controller,
		cfg:      opts.Config,
		provider: opts.ProviderName,
		logger:   logger,
		keys:     keys,
		mapper:   NewKeyMapper(keys),
		help:     help.New(),
		spinner:  sp,
		width:    opts.Runtime.ScreenW,
		height:   opts.Runtime.ScreenH,
	}
	m.status = m.ctrl.Status()
	m.briefing = renderBriefing(m.cfg.UI.Briefing, m.width)
	return m
}

// Init subscribes to controller changes and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.ctrl.Changes()), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case ChangeMsg:
		m.refresh()
		return m, waitForChange(m.ctrl.Changes())

	case markerExpiredMsg:
		m.dropMarker(msg.id)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// refresh pulls the latest status and drops view state that no longer applies.
func (m *Model) refresh() {
	m.status = m.ctrl.Status()
	if m.status.Phase != game.PhasePlaying {
		m.modal = ""
		m.markers = nil
	}
	if n := len(m.ctrl.Roster().Characters); m.cursor >= n {
		m.cursor = core.Max(n-1, 0)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	cmd, allyID := m.mapper.Map(msg)
	if cmd == core.CommandQuit {
		m.ctrl.Close()
		m.quitting = true
		return m, tea.Quit
	}
	if cmd == core.CommandNone {
		return m, nil
	}

	var out tea.Cmd
	switch m.status.Phase {
	case game.PhaseLobby:
		m.handleLobby(cmd)
	case game.PhaseCharacterSelect:
		m.handleSelect(cmd)
	case game.PhasePlaying:
		out = m.handlePlaying(cmd, allyID)
	case game.PhaseGameOver:
		m.handleGameOver(cmd)
	}

	m.refresh()
	return m, out
}

func (m *Model) handleLobby(cmd core.Command) {
	if cmd == core.CommandConfirm {
		m.ctrl.OpenCharacterSelect()
		m.cursor = 0
	}
}

func (m *Model) handleSelect(cmd core.Command) {
	chars := m.ctrl.Roster().Characters
	switch cmd {
	case core.CommandUp:
		m.cursor = core.Max(m.cursor-1, 0)
	case core.CommandDown:
		m.cursor = core.Min(m.cursor+1, len(chars)-1)
	case core.CommandConfirm:
		if m.cursor < 0 || m.cursor >= len(chars) {
			return
		}
		id := chars[m.cursor].ID
		if m.ctrl.SelectCharacter(id) && !m.ctrl.StartRun() {
			m.logger.Warn("run did not start", "character", id)
		}
	case core.CommandBack:
		m.ctrl.ResetToLobby()
	}
}

func (m *Model) handlePlaying(cmd core.Command, allyID string) tea.Cmd {
	if m.modal != "" {
		switch cmd {
		case core.CommandConfirm:
			if ally, ok := m.ctrl.Roster().Ally(m.modal); ok {
				m.ctrl.SubmitAction(ally.Action, ally.ID)
			}
			m.modal = ""
		case core.CommandBack:
			m.modal = ""
		}
		return nil
	}

	switch cmd {
	case core.CommandVote:
		if m.ctrl.ManualVote() {
			return m.addMarker()
		}
	case core.CommandPromise:
		m.ctrl.SubmitAction(game.ActionPromise, "")
	case core.CommandStuff:
		m.ctrl.SubmitAction(game.ActionBallotStuffing, "")
	case core.CommandAlly:
		if m.ctrl.Processing() {
			return nil
		}
		if _, ok := m.ctrl.Roster().Ally(allyID); ok {
			m.modal = allyID
		}
	}
	return nil
}

func (m *Model) handleGameOver(cmd core.Command) {
	if cmd == core.CommandReplay || cmd == core.CommandConfirm {
		m.ctrl.ResetToLobby()
	}
}

func (m *Model) addMarker() tea.Cmd {
	m.nextMarker++
	m.markers = append(m.markers, voteMarker{id: m.nextMarker})
	return expireMarker(m.nextMarker)
}

func (m *Model) dropMarker(id int) {
	for i, mk := range m.markers {
		if mk.id == id {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			return
		}
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.briefing = renderBriefing(m.cfg.UI.Briefing, m.width)
	return m, nil
}

// renderBriefing renders the lobby markdown, falling back to the raw text.
func renderBriefing(md string, width int) string {
	if md == "" {
		return ""
	}
	if width <= 0 {
		width = core.DefaultConfig().ScreenW
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(core.Max(width-4, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// saveScreenshot saves the current view to a file.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".nirbachon", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.status.Phase, timestamp))
	if err := os.WriteFile(path, []byte(m.View()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
