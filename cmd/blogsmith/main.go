package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"blogsmith/internal/config"
	"blogsmith/pkg/report"
	"blogsmith/pkg/scraper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "blogsmith",
	Short: "Blogsmith - heuristic blog scraper",
	Long: `Blogsmith crawls a website's blog section without site-specific
configuration, discovering posts through layered markup heuristics and
saving each one as a structured JSON document.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [URL]",
	Short: "Scrape a blog starting from its homepage or listing page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seedURL := args[0]

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyScrapeFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger := newLogger(cfg)
		s, err := scraper.New(seedURL, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create scraper: %w", err)
		}

		result, err := s.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("scrape failed: %w", err)
		}

		fmt.Printf("Scraped %d of %d posts across %d pages into %s\n",
			result.PostsScraped, result.PostsFound, result.PagesVisited, cfg.Scraper.OutputDir)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [DIR]",
	Short: "Summarize the posts scraped into a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		r := report.New()
		summary, err := r.Generate(dir, format)
		if err != nil {
			return fmt.Errorf("report generation failed: %w", err)
		}

		if output != "" {
			if err := os.WriteFile(output, []byte(summary), 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Report saved to %s\n", output)
		} else {
			fmt.Print(summary)
		}
		return nil
	},
}

// applyScrapeFlags lets explicitly set flags override file and env config.
func applyScrapeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output") {
		cfg.Scraper.OutputDir, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("delay") {
		cfg.Scraper.Delay, _ = cmd.Flags().GetDuration("delay")
	}
	if cmd.Flags().Changed("max-posts") {
		cfg.Scraper.MaxPosts, _ = cmd.Flags().GetInt("max-posts")
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.Scraper.MaxPages, _ = cmd.Flags().GetInt("max-pages")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Scraper.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flags().Changed("readability-fallback") {
		cfg.Extractor.ReadabilityFallback, _ = cmd.Flags().GetBool("readability-fallback")
	}
	if cmd.Flags().Changed("verbose") {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.Logging.Level = "debug"
		}
	}
}

func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if level, err := log.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

func init() {
	scrapeCmd.Flags().String("output", "posts", "Output directory for scraped posts")
	scrapeCmd.Flags().Duration("delay", time.Second, "Delay between requests")
	scrapeCmd.Flags().Int("max-posts", 50, "Maximum number of posts to scrape")
	scrapeCmd.Flags().Int("max-pages", 5, "Maximum number of listing pages to visit")
	scrapeCmd.Flags().Duration("timeout", 10*time.Second, "Per-request timeout")
	scrapeCmd.Flags().Bool("readability-fallback", false, "Fall back to generic article extraction when content selectors miss")

	reportCmd.Flags().String("format", "text", "Report format (text, json)")
	reportCmd.Flags().String("output", "", "Output file for report")

	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(reportCmd)

	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
