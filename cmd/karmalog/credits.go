package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karmabot/karmalog/internal/alias"
	"github.com/karmabot/karmalog/internal/fetch"
)

var creditsCmd = &cobra.Command{
	Use:   "parse-credits [file]",
	Short: "Parse a credits document and report the alias table",
	Long: `Parse a credits document from a local file (or the configured URL when
no file is given) and print the resulting alias mappings. Useful for
checking a CREDITS file before pointing the bot at it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCredits,
}

func runParseCredits(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read credits file: %w", err)
		}
		text = string(data)
	} else {
		if cfg.Credits.URL == "" {
			return fmt.Errorf("no credits file given and credits.url is not configured")
		}
		var err error
		text, err = fetch.NewClient(cfg.Feeds.RateLimit, logger).CreditsDocument(context.Background(), cfg.Credits.URL)
		if err != nil {
			return fmt.Errorf("fetch credits: %w", err)
		}
	}

	table := alias.NewTable()
	count := table.Parse(text)
	fmt.Printf("%d aliases\n", count)
	return nil
}
