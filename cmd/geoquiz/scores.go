package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/geoquiz/internal/platform/tui"
	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Show the best games for a mode on the current dataset.

Examples:
  geoquiz scores                   # Classic on the current dataset
  geoquiz scores multiple_choice   # Another mode
  geoquiz scores --all             # Every dataset
  geoquiz scores --stats           # Per-mode statistics
  geoquiz scores --tui             # Interactive scoreboard
  geoquiz scores classic --clear   # Delete every classic game`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-mode statistics")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every stored game of the mode")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Include every dataset")
}

func runScores(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	store, err := storage.Open(a.cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := terminalSize()
		return tui.RunScoreboard(store, a.modes, a.cfg.Dataset, width, height)
	}
	if flagScoresStats {
		return printStats(store)
	}

	modeID := string(a.cfg.Game.Mode)
	if len(args) > 0 {
		modeID = args[0]
	}
	if modeID == "" {
		modeID = string(quiz.ModeClassic)
	}
	if !a.modes.Exists(quiz.ModeID(modeID)) {
		return fmt.Errorf("unknown game mode %q (run 'geoquiz list')", modeID)
	}

	if flagScoresClear {
		if err := store.ClearScores(modeID); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s games.\n", modeID)
		return nil
	}

	dataset := a.cfg.Dataset
	if flagScoresAll {
		dataset = ""
	}

	results, err := store.TopScores(modeID, dataset, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("No %s games yet.\n", modeID)
		return nil
	}

	high, err := store.HighScore(modeID, dataset)
	if err != nil {
		return err
	}
	fmt.Printf("%s - high score %d\n\n", a.modes.Get(quiz.ModeID(modeID)).Title(), high)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tGAME\tSCORE\tCORRECT\tLEVEL\tDATASET\tPLAYER\tDATE")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d/%d\t%s\t%s\t%s\t%s\n",
			i+1, r.ID, r.Score, r.Correct, r.Rounds, r.Difficulty, r.Dataset,
			r.Player, r.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func printStats(store *storage.Store) error {
	stats, err := store.AllModeStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No games yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tGAMES\tBEST\tAVG\tACCURACY\tLAST PLAYED")
	for _, id := range slices.Sorted(maps.Keys(stats)) {
		st := stats[id]
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.0f%%\t%s\n",
			st.ModeID, st.GamesCount, st.HighScore, st.AvgScore, st.Accuracy*100,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
