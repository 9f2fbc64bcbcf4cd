// Package alias maintains the mapping from commit-log identities and
// display names to canonical usernames, built from a project CREDITS
// document.
package alias

import (
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/karmabot/karmalog/internal/logging"
)

// Table maps alternate identity strings (commit-log names, display
// names, username variants) to canonical usernames. The mapping is an
// immutable snapshot replaced wholesale on each refresh, so readers
// never observe a partially rebuilt table.
type Table struct {
	snapshot atomic.Pointer[map[string]string]
}

// NewTable returns an empty table.
func NewTable() *Table {
	t := &Table{}
	empty := map[string]string{}
	t.snapshot.Store(&empty)
	return t
}

var (
	// A credits document starts with preamble text; a line containing a
	// run of dashes marks the beginning of the parseable records.
	delimiterRe = regexp.MustCompile(`----`)

	// Record fields look like "U: coke" or "N: Will Coleda".
	fieldRe = regexp.MustCompile(`^([A-Z]): (.*)$`)

	aliasSplitRe = regexp.MustCompile(`,\s*`)
)

// Parse rebuilds the table from a credits document and swaps it in
// atomically. Records are blank-line separated; a record without a U
// (username) field contributes nothing. Returns the alias count.
func (t *Table) Parse(text string) int {
	lines := strings.Split(text, "\n")

	// Discard everything up to and including the delimiter line.
	start := len(lines)
	for i, line := range lines {
		if delimiterRe.MatchString(line) {
			start = i + 1
			break
		}
	}

	next := make(map[string]string)
	fields := make(map[string]string)

	flush := func() {
		defer clear(fields)
		user, ok := fields["U"]
		if !ok {
			return
		}
		if name, ok := fields["N"]; ok {
			next[name] = user
		}
		if aliases, ok := fields["A"]; ok {
			for _, tok := range aliasSplitRe.Split(aliases, -1) {
				tok = unquote(tok)
				if tok != "" {
					next[tok] = user
				}
			}
		}
	}

	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if m := fieldRe.FindStringSubmatch(line); m != nil {
			// Repeated fields within a record: last write wins.
			fields[m[1]] = m[2]
		}
	}
	flush()

	t.snapshot.Store(&next)
	logging.Info("alias table rebuilt", "aliases", len(next))
	return len(next)
}

// unquote strips at most one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Resolve returns the canonical username for identity, or identity
// unchanged when no alias is known. Matching is exact-string only.
func (t *Table) Resolve(identity string) string {
	m := *t.snapshot.Load()
	if user, ok := m[identity]; ok {
		return user
	}
	return identity
}

// Render resolves identity and renders it in karma form: the resolved
// name with a "++" suffix, parenthesized first when it contains a
// space. An empty identity renders as the literal "unknown".
func (t *Table) Render(identity string) string {
	name := "unknown"
	if identity != "" {
		name = t.Resolve(identity)
	}
	if strings.Contains(name, " ") {
		name = "(" + name + ")"
	}
	return name + "++"
}

// Len reports the number of known aliases.
func (t *Table) Len() int {
	return len(*t.snapshot.Load())
}
