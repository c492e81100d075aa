// Package main is the entry point for the faqsearch CLI, which runs FAQ
// searches against a content file without starting the web server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tutorsite/internal/config"
	"tutorsite/internal/content"
	"tutorsite/internal/search"
)

var (
	contentFile string
	noFuzzy     bool
)

var rootCmd = &cobra.Command{
	Use:   "faqsearch",
	Short: "Search the tutoring FAQ from the command line",
	Long: `faqsearch loads the FAQ content file, builds the search index and runs
queries against it with the same ranking the website uses.

Examples:
  faqsearch query "11+ preparation"     # Ranked results
  faqsearch stats                       # Index statistics
  faqsearch stats --misses 20           # Top searches with no answer
  faqsearch watch < keystrokes.txt      # Debounced search-as-you-type`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentFile, "content", "", "FAQ content file (default: $FAQ_CONTENT_FILE or content/faq.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noFuzzy, "no-fuzzy", false, "disable word-overlap matching")
}

// loadEngine builds a search engine over the configured content file.
func loadEngine() (*search.Engine, *content.Content, error) {
	path := contentFile
	if path == "" {
		path = config.Load().ContentFile
	}

	faq, err := content.Load(path)
	if err != nil {
		return nil, nil, err
	}
	idx, err := search.BuildIndex(faq.Questions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build index from %s: %w", path, err)
	}

	engine := search.NewEngine(idx, search.Options{
		Fuzzy:      !noFuzzy,
		MaxResults: search.DefaultMaxResults,
		Categories: faq.Categories,
	})
	return engine, faq, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
