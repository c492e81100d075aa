package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tutorsite/internal/config"
	"tutorsite/internal/db"
	"tutorsite/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print index statistics",
	Long: `Print statistics about the FAQ index built from the content file.

With --misses, also print the most frequent searches that returned no
results, read from the database at $DATABASE_URL.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("json", false, "output as JSON")
	statsCmd.Flags().Int("misses", 0, "also list this many top zero-result searches")
}

func runStats(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	misses, _ := cmd.Flags().GetInt("misses")

	engine, _, err := loadEngine()
	if err != nil {
		return err
	}
	stats := engine.Index().Stats()

	var missed []models.SearchQueryStat
	if misses > 0 {
		missed, err = topMisses(misses)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			models.IndexStats
			Misses []models.SearchQueryStat `json:"misses,omitempty"`
		}{stats, missed})
	}

	fmt.Fprintf(out, "Version:    %s\n", stats.Version)
	fmt.Fprintf(out, "Questions:  %d\n", stats.QuestionCount)
	fmt.Fprintf(out, "Categories: %d\n", stats.CategoryCount)

	printDistribution(cmd, "By category", stats.CategoryDistribution)
	printDistribution(cmd, "By difficulty", stats.DifficultyDistribution)
	printDistribution(cmd, "By client segment", stats.SegmentDistribution)

	if misses > 0 {
		fmt.Fprintln(out, "\nTop searches without results:")
		if len(missed) == 0 {
			fmt.Fprintln(out, "  none recorded")
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, s := range missed {
			fmt.Fprintf(w, "  %s\t%d\t%s\n", s.Query, s.Count, s.LastSeenAt.Format(time.DateOnly))
		}
		w.Flush()
	}
	return nil
}

// printDistribution writes counts sorted by key.
func printDistribution(cmd *cobra.Command, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s:\n", title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%d\n", k, counts[k])
	}
	w.Flush()
}

func topMisses(limit int) ([]models.SearchQueryStat, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.New(ctx, config.Load().DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	return database.GetTopSearchQueries(ctx, models.OutcomeMiss, limit)
}
