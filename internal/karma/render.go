// Package karma turns commit and ticket activity into attributed chat
// messages: short lines crediting a resolved username with a "++"
// suffix.
package karma

import (
	"github.com/karmabot/karmalog/internal/alias"
)

// Renderer assembles karma message lines. It is the shared low-level
// piece under both the commit and ticket formatters; username
// resolution and space-wrapping happen here and nowhere upstream, so an
// already-wrapped name is never wrapped twice.
type Renderer struct {
	aliases *alias.Table
}

// NewRenderer builds a renderer over the given alias table.
func NewRenderer(aliases *alias.Table) *Renderer {
	return &Renderer{aliases: aliases}
}

// Message renders one karma message. The first line carries the
// revision, the rendered user, and a separator: the common path prefix
// when one is known, else "/", with a ":" appended when log lines or a
// review link follow. Every line is prefixed with "<feed>: ".
func (r *Renderer) Message(feed, rev, user string, logLines []string, link, prefix string) []string {
	separator := prefix
	if separator == "" {
		separator = "/"
	}
	if len(logLines) > 0 || link != "" {
		separator += ":"
	}

	lines := make([]string, 0, len(logLines)+2)
	lines = append(lines, rev+" | "+r.aliases.Render(user)+" | "+separator)
	lines = append(lines, logLines...)
	if link != "" {
		lines = append(lines, "review: "+link)
	}

	for i, line := range lines {
		lines[i] = feed + ": " + line
	}
	return lines
}
