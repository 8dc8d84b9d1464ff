package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/nirbachon-chaos/internal/config"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
)

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List symbols, actions and allies",
	Long: `Shows the playable election symbols, the action catalog and which
ally brokers each action.`,
	Run: runCharacters,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// newTable returns a table in the CLI's house style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func runCharacters(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	roster := cfg.Roster()

	fmt.Println("Symbols:")
	fmt.Println(rosterTable(roster).Render())
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println(catalogTable(roster).Render())
	fmt.Println()
	fmt.Println("Run 'nirbachon simulate --character <id>' to try a strategy.")
}

func rosterTable(r game.Roster) *table.Table {
	t := newTable("ID", "Name", "Title", "Corruption", "Influence", "Special")
	for _, c := range r.Characters {
		t.Row(c.ID, c.Name, c.Title,
			fmt.Sprintf("%d%%", c.InitialCorruption),
			fmt.Sprintf("%d%%", c.InitialInfluence),
			c.SpecialAbility)
	}
	return t
}

func catalogTable(r game.Roster) *table.Table {
	t := newTable("ID", "Action", "Effect", "Broker")
	for _, a := range game.Catalog() {
		t.Row(string(a.ID), a.Label, describeEffect(a.Effect), brokers(r, a.ID))
	}
	return t
}

// describeEffect lists the non-zero deltas of an effect.
func describeEffect(e game.Effect) string {
	var parts []string
	add := func(label string, v int) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", label, v))
		}
	}
	add("votes", e.Votes)
	add("fake", e.FakeVotes)
	add("money", e.Money)
	add("corruption", e.Corruption)
	add("support", e.Support)
	parts = append(parts, "day +1")
	return strings.Join(parts, ", ")
}

// brokers names who offers an action: allies by name, otherwise the candidate.
func brokers(r game.Roster, id game.ActionID) string {
	var names []string
	for _, a := range r.Allies {
		if a.Action == id {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return "candidate"
	}
	return strings.Join(names, ", ")
}
