// nirbachon is a timed satirical election clicker for the terminal.
//
// Usage:
//
//	nirbachon                  - Play (same as "nirbachon play")
//	nirbachon play             - Play the game
//	nirbachon characters       - List symbols, actions and allies
//	nirbachon simulate         - Run a scripted game headlessly
//	nirbachon flavor           - Inspect or clear the flavor-text journal
//
// Global flags:
//
//	--config <path>    - Content config YAML
//	--db <path>        - Flavor journal database (default: ~/.nirbachon/flavor.db)
//	--log-file <path>  - Log file (default: ~/.nirbachon/nirbachon.log)
//	--log-level <lvl>  - debug, info, warn or error
//	--provider <name>  - Flavor-text provider override
//	--seed <value>     - RNG seed for the offline provider
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
	flagProvider string
	flagSeed     int64
)

func main() {
	// A missing .env is fine; the environment may already carry the key.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nirbachon",
	Short: "Nirbachon Chaos - win a very fair election in ninety seconds",
	Long: `Nirbachon Chaos is a satirical election clicker for the terminal.
Pick a symbol, then reach 50,000 votes before the clock runs out or
corruption hits the ceiling.

Available commands:
  play        - Play the game (default)
  characters  - Show symbols, actions and allies
  simulate    - Run a scripted game without a terminal
  flavor      - Inspect the flavor-text journal

Examples:
  nirbachon
  nirbachon play --provider offline
  nirbachon simulate --character paddy --script "stuff,wait*2,vote*10"
  nirbachon flavor --limit 5`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom content config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.nirbachon/flavor.db", "Path to flavor journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.nirbachon/nirbachon.log", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "Flavor-text provider (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(flavorCmd)
}
