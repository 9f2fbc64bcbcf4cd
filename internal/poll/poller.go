// Package poll drives the periodic work: credits refreshes and feed
// polls on independent intervals. It is the only place goroutines are
// spawned; the pipeline itself stays synchronous.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/karmabot/karmalog/internal/alias"
	"github.com/karmabot/karmalog/internal/config"
	"github.com/karmabot/karmalog/internal/dispatch"
	"github.com/karmabot/karmalog/internal/feed"
	"github.com/karmabot/karmalog/internal/fetch"
)

// Source produces the raw feed items for one project per poll.
type Source interface {
	Project() string
	Fetch(ctx context.Context) ([]feed.Item, error)
}

// Poller owns the periodic scheduling.
type Poller struct {
	cfg        *config.Config
	aliases    *alias.Table
	fetcher    *fetch.Client
	sequencer  *feed.Sequencer
	dispatcher feed.Dispatcher
	store      *dispatch.SeenStore
	sources    []Source
	logger     *logrus.Logger

	mu    sync.Mutex
	ready map[string]bool
}

// New builds a poller. store may be nil; the watermark is then only
// computed, never stored.
func New(cfg *config.Config, aliases *alias.Table, registry *feed.Registry, dispatcher feed.Dispatcher,
	store *dispatch.SeenStore, fetcher *fetch.Client, sources []Source, logger *logrus.Logger) *Poller {

	p := &Poller{
		cfg:        cfg,
		aliases:    aliases,
		fetcher:    fetcher,
		dispatcher: dispatcher,
		store:      store,
		sources:    sources,
		logger:     logger,
		ready:      make(map[string]bool),
	}
	p.sequencer = feed.NewSequencer(registry, feed.Lexical, p.markReady)
	return p
}

// Run blocks until ctx is cancelled, polling on the configured
// intervals. The first credits refresh and feed poll happen
// immediately.
func (p *Poller) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p.refreshCredits(ctx)
		ticker := time.NewTicker(p.cfg.Credits.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				p.refreshCredits(ctx)
			}
		}
	})

	g.Go(func() error {
		p.pollFeeds(ctx)
		ticker := time.NewTicker(p.cfg.Feeds.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				p.pollFeeds(ctx)
			}
		}
	})

	return g.Wait()
}

// refreshCredits rebuilds the alias table. A fetch failure leaves the
// previous table in place until the next tick.
func (p *Poller) refreshCredits(ctx context.Context) {
	if p.cfg.Credits.URL == "" {
		return
	}

	text, err := p.fetcher.CreditsDocument(ctx, p.cfg.Credits.URL)
	if err != nil {
		p.logger.WithError(err).Warn("credits refresh failed, keeping previous table")
		return
	}
	p.aliases.Parse(text)
}

// pollFeeds runs one poll cycle over every source. A failed source is
// skipped for this cycle.
func (p *Poller) pollFeeds(ctx context.Context) {
	for _, src := range p.sources {
		if ctx.Err() != nil {
			return
		}

		items, err := src.Fetch(ctx)
		if err != nil {
			p.logger.WithError(err).WithField("project", src.Project()).Warn("feed poll failed")
			continue
		}

		watermark := p.sequencer.Process(src.Project(), items, p.dispatcher)
		if p.store != nil && watermark != "" {
			if err := p.store.SetWatermark(src.Project(), watermark); err != nil {
				p.logger.WithError(err).Warn("failed to store watermark")
			}
		}
	}
}

func (p *Poller) markReady(project string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ready[project] = true
}

// Ready reports whether a project has completed at least one poll.
func (p *Poller) Ready(project string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready[project]
}
