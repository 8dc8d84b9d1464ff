package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nirbachon-chaos/internal/platform/tui"
	"github.com/vovakirdan/nirbachon-chaos/internal/storage"
)

var (
	flagFlavorLimit  int
	flagFlavorClear  bool
	flagFlavorBrowse bool
)

var flavorCmd = &cobra.Command{
	Use:   "flavor",
	Short: "Inspect the flavor-text journal",
	Long: `Shows how many generated headlines and dialogue lines are journaled
and lists the most recent ones. The offline provider replays these lines.

Examples:
  nirbachon flavor
  nirbachon flavor --limit 50
  nirbachon flavor --browse
  nirbachon flavor --clear`,
	Run: runFlavor,
}

func init() {
	flavorCmd.Flags().IntVar(&flagFlavorLimit, "limit", 10, "Number of recent lines to show")
	flavorCmd.Flags().BoolVar(&flagFlavorClear, "clear", false, "Delete every journaled line")
	flavorCmd.Flags().BoolVar(&flagFlavorBrowse, "browse", false, "Browse the journal interactively")
}

func runFlavor(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening flavor journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagFlavorClear:
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Flavor journal cleared.")

	case flagFlavorBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunJournal(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		printJournal(store)
	}
}

func printJournal(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("Nothing journaled yet.")
		fmt.Println()
		fmt.Println("Play with a live provider (GEMINI_API_KEY) to collect lines.")
		return
	}

	summary := newTable("Kind", "Lines", "Last saved")
	for _, s := range stats {
		summary.Row(string(s.Kind), humanize.Comma(int64(s.Count)), humanize.Time(s.LastSaved))
	}
	fmt.Println(summary.Render())

	lines, err := store.RecentLines(flagFlavorLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	recent := newTable("ID", "Kind", "Actor", "Action", "Text")
	for _, l := range lines {
		actor := l.ActorID
		if actor == "" {
			actor = "-"
		}
		recent.Row(fmt.Sprintf("%d", l.ID), string(l.Kind), actor, l.ActionID, l.Text)
	}
	fmt.Println()
	fmt.Println("Recent lines:")
	fmt.Println(recent.Render())
}
