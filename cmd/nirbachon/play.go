package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nirbachon-chaos/internal/core"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
	"github.com/vovakirdan/nirbachon-chaos/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the interactive game.

Controls:
  Enter        - Start / choose symbol / seal a deal
  Up/Down      - Move between symbols
  Space/V      - Cast a vote (+150)
  1            - Promise rally
  2            - Ballot stuffing
  A/D/R/M      - Talk to Apa, Akik, the reporter or Rajib
  Esc          - Walk away from a deal
  P            - Play again after the result
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  nirbachon play
  nirbachon play --provider offline --seed 42
  nirbachon play --config ./my-election.yaml`,
	Run: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sess, err := openSession(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctrl, err := game.NewController(game.Options{
		Roster:        sess.cfg.Roster(),
		Start:         sess.cfg.StartValues(),
		Notices:       sess.cfg.GameNotices(),
		Flavor:        sess.gateway,
		Logger:        logger,
		FlavorTimeout: sess.cfg.Flavor.Timeout,
	})
	if err != nil {
		sess.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:     width,
		ScreenH:     height,
		RefreshRate: sess.cfg.UI.RefreshRate,
	}

	runErr := tui.Run(tui.Options{
		Controller:   ctrl,
		Config:       sess.cfg,
		Runtime:      runtime,
		ProviderName: sess.gateway.ProviderName(),
		Logger:       logger,
	})

	// Close before potential exit
	ctrl.Close()
	sess.Close()

	if runErr != nil {
		logger.Error("tui stopped", "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
