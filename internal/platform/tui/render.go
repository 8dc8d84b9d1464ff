package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/nirbachon-chaos/internal/core"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// colorize renders s in the given color.
func colorize(c core.Color, s string) string {
	style, ok := colorStyles[c]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}
	return style.Render(s)
}

const (
	meterFull  = "█"
	meterEmpty = "░"
)

// meterFill returns how many of width cells a 0-100 level fills.
func meterFill(level, width int) int {
	if width <= 0 {
		return 0
	}
	return core.Clamp(level*width/game.MeterMax, 0, width)
}

// meterBar renders a colored bar with a percentage.
func meterBar(level, width int, highIsBad bool) string {
	filled := meterFill(level, width)
	bar := strings.Repeat(meterFull, filled) + strings.Repeat(meterEmpty, width-filled)
	return colorize(core.MeterColor(level, highIsBad), fmt.Sprintf("%s %3d%%", bar, level))
}

// formatCount formats an integer with thousands separators.
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

// formatMoney formats the campaign chest in taka.
func formatMoney(n int) string {
	if n < 0 {
		return "-৳" + humanize.Comma(int64(-n))
	}
	return "৳" + humanize.Comma(int64(n))
}

// voteProgress renders total votes against the target.
func voteProgress(total int) string {
	return fmt.Sprintf("%s / %s", formatCount(total), formatCount(game.VoteTarget))
}

// newsTicker joins headlines most recent first.
func newsTicker(news []string) string {
	return strings.Join(news, " || ")
}

// voteMarkerText formats the transient manual-vote marker.
func voteMarkerText(format string) string {
	if strings.Contains(format, "%d") {
		return fmt.Sprintf(format, game.ManualVoteIncrement)
	}
	return fmt.Sprintf("+%d", game.ManualVoteIncrement)
}

// outcomeLabel describes how a run ended.
func outcomeLabel(s game.Snapshot) string {
	switch s.Outcome {
	case game.OutcomeWon:
		return "won"
	case game.OutcomeLost:
		return "lost (" + s.Cause.String() + ")"
	default:
		return "in progress"
	}
}

// SummaryRows returns the end-of-run summary as label/value rows.
func SummaryRows(character game.Character, s game.Snapshot) [][]string {
	return [][]string{
		{"Character", character.Name},
		{"Outcome", outcomeLabel(s)},
		{"Total votes", formatCount(s.TotalVotes())},
		{"Target", formatCount(game.VoteTarget)},
		{"Votes", formatCount(s.Votes)},
		{"Fake votes", formatCount(s.FakeVotes)},
		{"Money", formatMoney(s.Money)},
		{"Corruption", fmt.Sprintf("%d%%", s.Corruption)},
		{"Support", fmt.Sprintf("%d%%", s.Support)},
		{"Day", fmt.Sprintf("%d", s.Day)},
		{"Time left", fmt.Sprintf("%ds", s.TimeLeft)},
		{"Time taken", fmt.Sprintf("%ds", game.RunDuration-s.TimeLeft)},
	}
}

// RenderSummary renders the end-of-run summary table.
func RenderSummary(character game.Character, s game.Snapshot) string {
	accent := colorStyles[core.ColorYellow]
	if s.Outcome == game.OutcomeWon {
		accent = colorStyles[core.ColorGreen]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(accent).
		BorderRow(false).
		Rows(SummaryRows(character, s)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return colorStyles[core.ColorGray].Padding(0, 1)
			}
			return lipgloss.NewStyle().Bold(true).Padding(0, 1)
		})

	return t.Render()
}
