// Package dispatch delivers sequenced commit events. It owns the
// "already seen" decision the core pipeline deliberately never makes.
package dispatch

import (
	"github.com/sirupsen/logrus"

	"github.com/karmabot/karmalog/internal/feed"
	"github.com/karmabot/karmalog/internal/karma"
	"github.com/karmabot/karmalog/internal/sink"
)

// Dispatcher formats unseen commit events and delivers the resulting
// lines to every registered target. It satisfies feed.Dispatcher.
type Dispatcher struct {
	formatter *karma.CommitFormatter
	store     *SeenStore
	out       sink.Sink
	logger    *logrus.Logger
}

// New builds a dispatcher. store may be nil, which disables
// de-duplication (every item is delivered).
func New(formatter *karma.CommitFormatter, store *SeenStore, out sink.Sink, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{formatter: formatter, store: store, out: out, logger: logger}
}

// Dispatch handles one sequenced item. Items whose revision (or, when
// the link carries none, update timestamp) was already delivered are
// skipped. Store failures fail open: the item is delivered anyway.
func (d *Dispatcher) Dispatch(project string, targets []feed.Target, revision string, item feed.Item) {
	key := revision
	if key == "" {
		key = string(item.Updated)
	}

	if d.store != nil {
		seen, err := d.store.Seen(project, key)
		if err != nil {
			d.logger.WithError(err).Warn("seen-store lookup failed, delivering anyway")
		} else if seen {
			d.logger.WithFields(logrus.Fields{
				"project":  project,
				"revision": revision,
			}).Debug("skipping already-delivered event")
			return
		}
	}

	lines := d.formatter.Format(project, revision, item)
	for _, target := range targets {
		if err := d.out.Deliver(target, lines); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"network": target.Network,
				"channel": target.Channel,
			}).Warn("delivery failed")
		}
	}

	if d.store != nil {
		if err := d.store.Mark(project, key, revision, item.Updated); err != nil {
			d.logger.WithError(err).Warn("failed to mark event as delivered")
		}
	}
}
