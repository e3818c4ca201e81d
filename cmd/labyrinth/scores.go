package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/labyrinth/internal/registry"
	"github.com/vovakirdan/labyrinth/internal/storage"
)

var (
	flagRecent    int
	flagAllScores bool
	flagClear     bool
	flagPlayer    string
	flagRunID     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 high scores for a game (default "labyrinth")
followed by the most recent runs of all games.

--player limits the run list to one player, --run prints a single run by
its ID and --clear deletes every score and run of the game.

Examples:
  labyrinth scores
  labyrinth scores labyrinth_daily --all
  labyrinth scores --recent 20 --player alice
  labyrinth scores --run 6f1c2a7e-8d3b-4c55-9a0e-2b7d4f8e1c90
  labyrinth scores labyrinth --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent runs to show (0 to hide)")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "Show every score instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs of the game")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show runs of this player")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by ID")
}

func runScores(cmd *cobra.Command, args []string) {
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

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	err = showScores(os.Stdout, store, gameID, game.Title())
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showScores runs the scores command against store, writing to w.
func showScores(w io.Writer, store *storage.Store, gameID, title string) error {
	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(w, "Cleared scores and runs of %s\n", title)
		return nil

	case flagRunID != "":
		run, err := store.RunByID(flagRunID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no run with id %q", flagRunID)
		}
		printRunDetails(w, run)
		return nil
	}

	var scores []storage.ScoreEntry
	var err error
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return err
	}
	printScoreTable(w, store, gameID, title, scores)

	if flagRecent <= 0 {
		return nil
	}

	var runs []storage.Run
	heading := "Recent runs"
	if flagPlayer != "" {
		runs, err = store.PlayerRuns(flagPlayer, flagRecent)
		heading = "Recent runs of " + flagPlayer
	} else {
		runs, err = store.RecentRuns(flagRecent)
	}
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading)
	fmt.Fprintln(w)
	printRunTable(w, runs)
	return nil
}

// printScoreTable prints ranked scores followed by the game statistics.
func printScoreTable(w io.Writer, store *storage.Store, gameID, title string, scores []storage.ScoreEntry) {
	fmt.Fprintf(w, "High Scores - %s\n", title)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'labyrinth play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

// printRunTable prints one line per run.
func printRunTable(w io.Writer, runs []storage.Run) {
	fmt.Fprintf(w, "  %-10s  %-16s  %-7s  %-9s  %-5s  %-6s  %-8s  %s\n",
		"Player", "Game", "Size", "Moves", "Eff", "Score", "Time", "Date")
	fmt.Fprintf(w, "  %-10s  %-16s  %-7s  %-9s  %-5s  %-6s  %-8s  %s\n",
		"------", "----", "----", "-----", "---", "-----", "----", "----")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-10s  %-16s  %-7s  %-9s  %-5s  %-6d  %-8s  %s\n",
			playerName(r.Player),
			r.GameID,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d/%d", r.Moves, r.Optimal),
			fmt.Sprintf("%.0f%%", r.Efficiency()*100),
			r.Score,
			r.Duration.Round(time.Second),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

// printRunDetails prints every field of a run and how to replay it.
func printRunDetails(w io.Writer, r *storage.Run) {
	fmt.Fprintf(w, "Run %s\n\n", r.ID)
	fmt.Fprintf(w, "  Player:     %s\n", playerName(r.Player))
	fmt.Fprintf(w, "  Game:       %s\n", r.GameID)
	fmt.Fprintf(w, "  Maze:       %dx%d seed %d\n", r.Width, r.Height, r.Seed)
	fmt.Fprintf(w, "  Moves:      %d (optimal %d, efficiency %.0f%%)\n", r.Moves, r.Optimal, r.Efficiency()*100)
	fmt.Fprintf(w, "  Hints:      %d\n", r.Hints)
	fmt.Fprintf(w, "  Score:      %d\n", r.Score)
	fmt.Fprintf(w, "  Time:       %s\n", r.Duration.Round(time.Second))
	fmt.Fprintf(w, "  Completed:  %t\n", r.Completed)
	fmt.Fprintf(w, "  Played:     %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Replay it with: labyrinth generate --width %d --height %d --seed %d\n", r.Width, r.Height, r.Seed)
}

// playerName labels runs without a player as local play.
func playerName(player string) string {
	if player == "" {
		return "local"
	}
	return player
}
