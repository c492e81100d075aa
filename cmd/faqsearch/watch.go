package main

import (
	"bufio"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"tutorsite/internal/models"
	"tutorsite/internal/search"
)

// settleTimeout bounds the wait for the last update after input ends.
const settleTimeout = 5 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run debounced search-as-you-type over lines from stdin",
	Long: `Each input line is treated as the current contents of the search box.
Lines arriving faster than the debounce delay supersede each other, and
only settled searches are printed. An empty line clears the results.

Examples:
  printf 'b\nbo\nboo\nbook\n' | faqsearch watch
  faqsearch watch --pace 100ms < keystrokes.txt`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("delay", search.DefaultDebounce, "debounce delay")
	watchCmd.Flags().Duration("pace", 0, "pause between input lines")
	watchCmd.Flags().IntP("limit", "n", 5, "results printed per update")
}

func runWatch(cmd *cobra.Command, args []string) error {
	delay, _ := cmd.Flags().GetDuration("delay")
	pace, _ := cmd.Flags().GetDuration("pace")
	limit, _ := cmd.Flags().GetInt("limit")

	engine, _, err := loadEngine()
	if err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		last uint64
	)
	settled := make(chan struct{}, 1)
	out := cmd.OutOrStdout()

	onUpdate := func(u search.Update) {
		mu.Lock()
		if u.Cleared {
			fmt.Fprintln(out, "(cleared)")
		} else {
			fmt.Fprintf(out, "> %s (generation %d): %d results\n", u.Query, u.Generation, len(u.Results))
			results := u.Results
			if len(results) > limit {
				results = results[:limit]
			}
			printResults(cmd, results)
		}
		last = u.Generation
		mu.Unlock()

		select {
		case settled <- struct{}{}:
		default:
		}
	}

	searchFn := func(ctx context.Context, query string) ([]models.ScoredResult, error) {
		return engine.Rank(ctx, query, models.SearchFilters{})
	}

	ctrl := search.NewController(searchFn, onUpdate, delay)
	defer ctrl.Close()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		ctrl.Input(scanner.Text())
		if pace > 0 {
			time.Sleep(pace)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	// Wait for the final generation to be delivered
	target := ctrl.Generation()
	if target == 0 {
		return nil
	}
	deadline := time.After(delay + settleTimeout)
	for {
		mu.Lock()
		done := last >= target
		mu.Unlock()
		if done {
			return nil
		}
		select {
		case <-settled:
		case <-deadline:
			return fmt.Errorf("timed out waiting for search %d to settle", target)
		}
	}
}
