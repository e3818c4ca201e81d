// labyrinth generates seeded mazes and lets you walk them in the terminal.
//
// Usage:
//
//	labyrinth list              - List available game variants
//	labyrinth play [game]       - Walk a maze (labyrinth or labyrinth_daily)
//	labyrinth menu              - Start menu to pick a variant interactively
//	labyrinth generate          - Print a maze, optionally export it as PNG
//	labyrinth verify            - Check maze invariants over many seeds
//	labyrinth serve             - Start SSH server for remote play
//	labyrinth scores [game]     - Show high scores and recent runs
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set maze seed for reproducible mazes
//	--db <path>           - Set database path (default: ~/.labyrinth/scores.db)
//	--config <path>       - Custom labyrinth config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--verbose             - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/labyrinth/internal/config"
	"github.com/vovakirdan/labyrinth/internal/games/labyrinth"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

// logger is the CLI logger; debug output is enabled by --verbose.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "labyrinth",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "labyrinth",
	Short: "Labyrinth - seeded mazes in your terminal",
	Long: `Labyrinth generates perfect mazes from a seed and lets you walk them
from the entrance in the top-left corner to the exit in the bottom-right.
The same seed and size always give the same maze.

Available commands:
  list      - Show game variants
  play      - Walk a maze directly
  menu      - Interactive picker menu
  generate  - Print a maze and its solution length
  verify    - Check maze invariants over many seeds
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs

Examples:
  labyrinth play
  labyrinth play labyrinth_daily
  labyrinth generate --width 12 --height 8 --seed 42 --solution
  labyrinth serve --ssh :2222`,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Maze seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.labyrinth/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom labyrinth config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup applies the global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	if flagDifficulty != "" && !config.DifficultyPreset(flagDifficulty).Valid() {
		return fmt.Errorf("unknown difficulty %q (expected easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	labyrinth.SetConfigPath(flagConfig)
	labyrinth.SetDifficultyPreset(flagDifficulty)
	logger.Debug("flags", "fps", flagFPS, "seed", flagSeed, "db", flagDBPath,
		"config", flagConfig, "difficulty", flagDifficulty)
	return nil
}

// loadConfig loads the labyrinth config the same way the games do.
func loadConfig() config.LabyrinthConfig {
	cfg, err := config.LoadLabyrinth(flagConfig)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultLabyrinthConfig()
	}
	if flagDifficulty != "" {
		config.ApplyLabyrinthPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}
	return cfg
}
