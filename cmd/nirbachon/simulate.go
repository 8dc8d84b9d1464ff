package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nirbachon-chaos/internal/config"
	"github.com/vovakirdan/nirbachon-chaos/internal/flavor"
	"github.com/vovakirdan/nirbachon-chaos/internal/flavor/offline"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
	"github.com/vovakirdan/nirbachon-chaos/internal/platform/tui"
)

// exitLost is the exit code of a simulated run that was lost.
const exitLost = 2

var (
	flagSimCharacter string
	flagSimScript    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted game without a terminal",
	Long: `Plays a run on a simulated clock with offline flavor text and prints
the result. Exits 0 on a win and 2 on a loss.

Script steps (comma separated, "*N" repeats):
  vote        - cast a manual vote (+150)
  promise     - promise rally
  stuff       - ballot stuffing
  npc:<id>    - take the deal an ally offers
  <action>    - any catalog action id, e.g. fake_news
  wait        - let one second pass

A script that ends early lets the clock run out.

Examples:
  nirbachon simulate --character paddy --script "stuff,npc:apa,stuff,vote*40"
  nirbachon simulate --character shapla --script "promise*3,wait*10"`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimCharacter, "character", "", "Character id to play")
	simulateCmd.Flags().StringVar(&flagSimScript, "script", "", "Comma-separated steps")
	//nolint:errcheck // flags are defined above
	simulateCmd.MarkFlagRequired("character")
	//nolint:errcheck // flags are defined above
	simulateCmd.MarkFlagRequired("script")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	roster := cfg.Roster()

	character, ok := roster.Character(flagSimCharacter)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown character %q\n", flagSimCharacter)
		fmt.Fprintln(os.Stderr, "Run 'nirbachon characters' to see available symbols.")
		os.Exit(1)
	}

	steps, err := parseScript(flagSimScript, roster)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gateway := flavor.NewGateway(flavor.GatewayOptions{
		Provider: offline.New(cfg.Flavor.Offline, nil, seed()),
		Config:   cfg.Flavor,
		Logger:   logger,
	})

	clock := game.NewManualClock()
	ctrl, err := game.NewController(game.Options{
		Roster:        roster,
		Start:         cfg.StartValues(),
		Notices:       cfg.GameNotices(),
		Flavor:        gateway,
		Clock:         clock,
		Logger:        logger,
		FlavorTimeout: cfg.Flavor.Timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer ctrl.Close()

	if !ctrl.OpenCharacterSelect() || !ctrl.SelectCharacter(character.ID) || !ctrl.StartRun() {
		fmt.Fprintln(os.Stderr, "Error: run did not start")
		os.Exit(1)
	}

	runner := &scriptRunner{ctrl: ctrl, clock: clock, logger: logger, timeout: cfg.Flavor.Timeout}
	if runner.timeout <= 0 {
		runner.timeout = game.DefaultFlavorTimeout
	}
	if err := runner.run(steps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap, _ := ctrl.Snapshot()
	fmt.Println(tui.RenderSummary(character, snap))
	fmt.Println()
	fmt.Println("News:")
	for _, n := range snap.News {
		fmt.Printf("  %s\n", n)
	}

	if snap.Outcome != game.OutcomeWon {
		ctrl.Close()
		os.Exit(exitLost)
	}
}
