package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/karmabot/karmalog/internal/alias"
	"github.com/karmabot/karmalog/internal/dispatch"
	"github.com/karmabot/karmalog/internal/feed"
	"github.com/karmabot/karmalog/internal/fetch"
	"github.com/karmabot/karmalog/internal/githubsrc"
	"github.com/karmabot/karmalog/internal/karma"
	"github.com/karmabot/karmalog/internal/poll"
	"github.com/karmabot/karmalog/internal/sink"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll configured feeds and emit karma messages",
	Long: `Run the bot: refresh the credits document and poll every configured
activity feed on their intervals, delivering karma messages to the
configured targets until interrupted.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	aliases := alias.NewTable()
	registry := feed.NewRegistry()
	fetcher := fetch.NewClient(cfg.Feeds.RateLimit, logger)

	var sources []poll.Source
	for _, entry := range cfg.Feeds.Entries {
		target := feed.Target{Network: entry.Network, Channel: entry.Channel}
		project, ok := registry.RegisterFeed(entry.URL, target)
		if !ok {
			continue
		}
		sources = append(sources, poll.NewGoogleCodeSource(fetcher, project, entry.URL))
	}

	for _, repo := range cfg.GitHub.Repos {
		registry.Add(repo.Name, feed.Target{Network: repo.Network, Channel: repo.Channel})
		src := githubsrc.New(cfg.GitHub.Token, cfg.GitHub.RateLimit, repo.Owner, repo.Name)
		sources = append(sources, poll.NewGitHubSource(src))
	}

	if len(sources) == 0 {
		return fmt.Errorf("no feeds configured; add feeds.entries or github.repos to the config")
	}

	store, err := dispatch.OpenSeenStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open seen store: %w", err)
	}
	defer store.Close()

	formatter := karma.NewCommitFormatter(karma.NewRenderer(aliases))
	dispatcher := dispatch.New(formatter, store, sink.NewLogSink(logger), logger)

	poller := poll.New(cfg, aliases, registry, dispatcher, store, fetcher, sources, logger)

	logger.WithField("sources", len(sources)).Info("karmalog running")
	if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
