package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagListRegions bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and region datasets",
	Long: `Shows every registered game mode and every dataset that can be played.

With --regions, lists the regions of the current dataset instead.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListRegions, "regions", false, "List the regions of the current dataset")
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if flagListRegions {
		return a.listRegions()
	}

	modes := a.modes.List()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}

	names, err := a.loader.Names()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Datasets:")
	fmt.Println()
	for _, name := range names {
		marker := " "
		if name == a.cfg.Dataset {
			marker = "*"
		}
		fmt.Printf(" %s %s\n", marker, name)
	}

	fmt.Println()
	fmt.Println("Run 'geoquiz play <mode>' to play.")
	return nil
}

func (a *app) listRegions() error {
	ds, err := a.dataset()
	if err != nil {
		return err
	}

	fmt.Printf("Dataset %s (%d regions):\n\n", ds.Name, ds.Len())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCENTER")
	for _, r := range ds.Regions() {
		fmt.Fprintf(w, "%s\t%s\t%.2f, %.2f\n", r.ID, r.Name, r.Centroid.Lat(), r.Centroid.Lon())
	}
	return w.Flush()
}
