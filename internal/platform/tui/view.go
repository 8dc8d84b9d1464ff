package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/nirbachon-chaos/internal/core"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
)

const meterWidth = 20

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("3")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("2"))

	dimStyle = colorStyles[core.ColorGray]
)

// View renders the current phase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.status.Phase {
	case game.PhaseLobby:
		body = m.viewLobby()
	case game.PhaseCharacterSelect:
		body = m.viewSelect()
	case game.PhasePlaying:
		body = m.viewPlaying()
	case game.PhaseGameOver:
		body = m.viewGameOver()
	}

	footer := m.help.View(m.keys.HelpFor(m.status.Phase, m.modal != ""))
	return lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
}

func (m Model) header() string {
	title := titleStyle.Render(m.cfg.UI.Title)
	if m.provider == "" {
		return title
	}
	return title + "  " + dimStyle.Render("flavor: "+m.provider)
}

func (m Model) viewLobby() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if m.cfg.UI.Tagline != "" {
		b.WriteString(dimStyle.Render(m.cfg.UI.Tagline))
		b.WriteString("\n")
	}
	if m.briefing != "" {
		b.WriteString(m.briefing)
	}
	b.WriteString("\n")
	b.WriteString(colorize(core.ColorYellow, "Press enter to choose your symbol"))
	return b.String()
}

func (m Model) viewSelect() string {
	chars := m.ctrl.Roster().Characters

	var list strings.Builder
	for i, c := range chars {
		line := fmt.Sprintf(" %s  %s ", c.Name, dimStyle.Render(c.Title))
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf(" %s  %s ", c.Name, c.Title))
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	detail := ""
	if m.cursor >= 0 && m.cursor < len(chars) {
		c := chars[m.cursor]
		width := core.Max(m.width-30, 30)
		detail = panelStyle.Width(width).Render(strings.Join([]string{
			titleStyle.Render(c.Name),
			c.Description,
			"",
			colorize(core.ColorCyan, c.SpecialAbility),
			"",
			"Corruption " + meterBar(c.InitialCorruption, meterWidth/2, true),
			"Influence  " + meterBar(c.InitialInfluence, meterWidth/2, false),
		}, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail),
	)
}

func (m Model) viewPlaying() string {
	st := m.status
	run := st.Run

	clock := colorize(core.TimeColor(run.TimeLeft), fmt.Sprintf("⏱ %02d:%02d", run.TimeLeft/60, run.TimeLeft%60))
	top := fmt.Sprintf("%s  %s  day %d  %s", titleStyle.Render(st.Character.Name), dimStyle.Render(st.Character.Title), run.Day, clock)

	progress := meterFill(core.Percent(run.TotalVotes(), game.VoteTarget), meterWidth*2)
	voteBar := colorize(core.ColorGreen, strings.Repeat(meterFull, progress)) +
		dimStyle.Render(strings.Repeat(meterEmpty, meterWidth*2-progress))

	markers := ""
	if len(m.markers) > 0 {
		marks := make([]string, len(m.markers))
		for i := range m.markers {
			marks[i] = voteMarkerText(m.cfg.UI.VoteMarker)
		}
		markers = colorize(core.ColorYellow, strings.Join(marks, " "))
	}

	stats := strings.Join([]string{
		fmt.Sprintf("Votes      %s  %s %s", voteBar, voteProgress(run.TotalVotes()), markers),
		fmt.Sprintf("Real/Fake  %s / %s", formatCount(run.Votes), formatCount(run.FakeVotes)),
		fmt.Sprintf("Money      %s", formatMoney(run.Money)),
		"Corruption " + meterBar(run.Corruption, meterWidth, true),
		"Support    " + meterBar(run.Support, meterWidth, false),
	}, "\n")

	dialogue := st.Dialogue
	if dialogue == "" {
		dialogue = m.cfg.UI.IdleDialogue
	}
	if st.Processing {
		dialogue = m.spinner.View() + " " + dialogue
	}
	if st.LossPending {
		dialogue = colorize(core.ColorRed, m.cfg.Notices.Corruption)
	}

	width := core.Max(m.width-4, 40)
	news := lipgloss.NewStyle().MaxWidth(width).Render(colorize(core.ColorOrange, "NEWS ") + newsTicker(run.News))

	sections := []string{
		top,
		panelStyle.Width(width).Render(stats),
		panelStyle.Width(width).Render(dialogue),
		news,
		"",
		m.actionsLine(),
	}
	if m.modal != "" {
		sections = append(sections, "", m.viewModal())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// actionsLine lists the candidate's actions and the allies' keys.
func (m Model) actionsLine() string {
	parts := make([]string, 0, len(m.keys.Allies)+2)
	if a, ok := game.LookupAction(game.ActionPromise); ok {
		parts = append(parts, fmt.Sprintf("[%s] %s", m.keys.Promise.Help().Key, a.Label))
	}
	if a, ok := game.LookupAction(game.ActionBallotStuffing); ok {
		parts = append(parts, fmt.Sprintf("[%s] %s", m.keys.Stuff.Help().Key, a.Label))
	}
	for _, ally := range m.ctrl.Roster().Allies {
		k := m.keys.AllyKey(ally.ID)
		if k == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", k, ally.Name))
	}
	line := strings.Join(parts, "  ")
	if m.status.Processing {
		return dimStyle.Render(line)
	}
	return line
}

func (m Model) viewModal() string {
	ally, ok := m.ctrl.Roster().Ally(m.modal)
	if !ok {
		return ""
	}
	label := string(ally.Action)
	if a, ok := game.LookupAction(ally.Action); ok {
		label = a.Label
	}
	return modalStyle.Render(strings.Join([]string{
		titleStyle.Render(ally.Name) + "  " + dimStyle.Render(ally.Role),
		"",
		ally.Pitch,
		"",
		colorize(core.ColorCyan, "Deal: "+label),
		dimStyle.Render("enter to seal the deal, esc to walk away"),
	}, "\n"))
}

func (m Model) viewGameOver() string {
	st := m.status
	notices := m.cfg.Notices

	headline, slogan := notices.LossHeadline, notices.LossSlogan
	color := core.ColorRed
	if st.Run.Outcome == game.OutcomeWon {
		headline, slogan = notices.WinHeadline, notices.WinSlogan
		color = core.ColorGreen
	}

	sections := []string{
		lipgloss.NewStyle().Bold(true).Render(colorize(color, headline)),
		"",
		RenderSummary(st.Character, st.Run),
	}
	if slogan != "" {
		sections = append(sections, "", colorize(core.ColorYellow, slogan))
		if notices.SloganCredit != "" {
			sections = append(sections, dimStyle.Render(notices.SloganCredit))
		}
	}
	if len(st.Run.News) > 0 {
		sections = append(sections, "", dimStyle.Render(st.Run.News[0]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
