package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tutorsite/internal/models"
)

var queryCmd = &cobra.Command{
	Use:   "query <text>...",
	Short: "Print ranked results for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().IntP("limit", "n", 10, "maximum number of results")
	queryCmd.Flags().String("category", "", "only search this category")
	queryCmd.Flags().String("difficulty", "", "only basic, intermediate or advanced questions")
	queryCmd.Flags().String("segment", "", "only questions for this client segment")
	queryCmd.Flags().Bool("json", false, "output the API response as JSON")
}

func runQuery(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	category, _ := cmd.Flags().GetString("category")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	segment, _ := cmd.Flags().GetString("segment")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	engine, _, err := loadEngine()
	if err != nil {
		return err
	}

	resp := engine.Search(context.Background(), strings.Join(args, " "), models.SearchFilters{
		Category:      category,
		Difficulty:    difficulty,
		ClientSegment: segment,
		Limit:         limit,
	})

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if len(resp.Results) == 0 {
		fmt.Fprintf(out, "No results for %q\n", resp.Metadata.Query)
		if len(resp.Metadata.Suggestions) > 0 {
			fmt.Fprintf(out, "Try: %s\n", strings.Join(resp.Metadata.Suggestions, ", "))
		}
		return nil
	}

	fmt.Fprintf(out, "%d results for %q (%.2fms)\n", resp.Metadata.TotalResults, resp.Metadata.Query, resp.Metadata.ExecutionTime)
	printResults(cmd, resp.Results)
	return nil
}

// printResults writes one numbered line per result.
func printResults(cmd *cobra.Command, results []models.ScoredResult) {
	for i, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d. [%5.1f] %s (%s)\n", i+1, r.Score, r.Entry.Question, r.Entry.ID)
	}
}
