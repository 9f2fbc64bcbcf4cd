package feed

import (
	"regexp"
	"sort"
)

// Dispatcher receives sequenced items one at a time. Whether an item
// has already been emitted is entirely the dispatcher's concern; the
// sequencer forwards every item it is given.
type Dispatcher interface {
	Dispatch(project string, targets []Target, revision string, item Item)
}

// Sequencer orders raw feed items and forwards them to a dispatcher.
type Sequencer struct {
	registry *Registry
	cmp      Comparator

	// Called after a project's items have all been forwarded; used by
	// the host for startup/liveness bookkeeping.
	pollDone func(project string)
}

// NewSequencer builds a sequencer over the given registry. cmp defaults
// to Lexical; pollDone may be nil.
func NewSequencer(registry *Registry, cmp Comparator, pollDone func(project string)) *Sequencer {
	if cmp == nil {
		cmp = Lexical
	}
	return &Sequencer{registry: registry, cmp: cmp, pollDone: pollDone}
}

var revisionRe = regexp.MustCompile(`\?r=(\d+)`)

// Revision extracts the ?r=<digits> revision number from an item link.
// Returns "" when the link carries none.
func Revision(link string) string {
	if m := revisionRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// Process forwards items for one project to the dispatcher in ascending
// timestamp order. Items without a recognizable revision are still
// forwarded; downstream decides how to render them. Returns the latest
// timestamp key seen, the candidate watermark. Nothing in this package
// persists or compares that watermark: suppressing already-emitted
// items is the dispatcher's responsibility.
func (s *Sequencer) Process(project string, items []Item, d Dispatcher) TimeKey {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.cmp(sorted[i].Updated, sorted[j].Updated) < 0
	})

	var watermark TimeKey
	targets := s.registry.Targets(project)
	for _, item := range sorted {
		d.Dispatch(project, targets, Revision(item.Link), item)
		if s.cmp(item.Updated, watermark) > 0 {
			watermark = item.Updated
		}
	}

	if s.pollDone != nil {
		s.pollDone(project)
	}
	return watermark
}
