package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/labyrinth/internal/core"
	"github.com/vovakirdan/labyrinth/internal/platform/tui"
	"github.com/vovakirdan/labyrinth/internal/registry"
	"github.com/vovakirdan/labyrinth/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Walk a maze",
	Long: `Start walking a maze. The game defaults to "labyrinth"; use
"labyrinth_daily" for the shared daily challenge.

Controls:
  Arrows/WASD/HJKL - Move
  ?                - Show or hide the way to the exit (costs score)
  P/Space          - Pause
  R                - New maze (the daily maze restarts)
  Ctrl+S           - Save a text screenshot
  B/Esc, Q/Ctrl+C  - Quit

Difficulty options:
  easy   - Small board, cheap hints that show the whole way
  normal - Medium board
  hard   - Large board, expensive hints
  fixed  - Use the configured board size even if it overflows the window

Examples:
  labyrinth play
  labyrinth play --seed 42
  labyrinth play --difficulty hard
  labyrinth play labyrinth_daily
  labyrinth play --config ./my-labyrinth.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// printRun prints the result of a finished run after the program exits.
func printRun(run *storage.Run, prevBest int) {
	if run == nil || !run.Completed {
		return
	}
	fmt.Printf("Escaped a %dx%d maze in %d moves (best possible %d), %s, score %d\n",
		run.Width, run.Height, run.Moves, run.Optimal, run.Duration.Round(time.Second), run.Score)
	if run.Score > prevBest {
		fmt.Printf("New high score! Previous best was %d\n", prevBest)
	}
	fmt.Printf("Replay it with: labyrinth play %s --seed %d\n", run.GameID, run.Seed)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "labyrinth"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'labyrinth list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := terminalConfig()
	store := openStore()

	prevBest := 0
	if store != nil {
		if best, err := store.HighScore(gameID); err == nil {
			prevBest = best
		}
	}

	logger.Debug("starting game", "game", gameID, "seed", cfg.Seed,
		"screen", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))
	run, runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	printRun(run, prevBest)
}
