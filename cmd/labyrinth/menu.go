package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/labyrinth/internal/platform/tui"
	"github.com/vovakirdan/labyrinth/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a picker menu",
	Long: `Start labyrinth in interactive menu mode.

Pick the classic maze or the daily challenge, or open the scoreboard.
After a maze you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  labyrinth menu
  labyrinth menu --difficulty easy
  labyrinth menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, os.Getenv("USER"), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// A fixed --seed replays the same maze every time
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if _, err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
