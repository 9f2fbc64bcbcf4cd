// Package feed orders raw activity-feed items deterministically and
// routes them, one at a time, to a dispatcher capability.
package feed

import "strings"

// TimeKey is an opaque, comparable feed timestamp. Ordering is defined
// by a Comparator rather than by the key itself, so the textual
// comparison used today can be replaced by a date-aware one without
// touching the sequencing algorithm.
type TimeKey string

// Comparator orders two timestamp keys. Negative means a before b.
type Comparator func(a, b TimeKey) int

// Lexical compares keys as plain text. Correct only while the feed
// timestamp representation stays fixed-width and zero-padded
// (e.g. ISO-8601 UTC).
func Lexical(a, b TimeKey) int {
	return strings.Compare(string(a), string(b))
}

// Item is one raw activity-feed entry, as fetched: the author identity
// string, the entry link (carrying a ?r=<digits> revision for
// Subversion feeds), the update timestamp, and the HTML-entity-encoded
// description body.
type Item struct {
	Author  string
	Link    string
	Updated TimeKey
	Content string
}

// Target addresses one delivery destination for karma messages.
type Target struct {
	Network string
	Channel string
}
