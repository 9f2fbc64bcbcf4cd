package karma

import (
	"fmt"

	"github.com/karmabot/karmalog/internal/alias"
)

// TicketFormatter renders karma messages for ticket state changes.
// Tickets follow the simpler convention: the resolved user gets the
// "++" suffix but is never parenthesized.
type TicketFormatter struct {
	aliases *alias.Table
}

// NewTicketFormatter builds a ticket formatter over the given alias
// table.
func NewTicketFormatter(aliases *alias.Table) *TicketFormatter {
	return &TicketFormatter{aliases: aliases}
}

// Format renders the message lines for one ticket event. An empty
// prefix defaults to "Ticket #", an empty user to "unknown"; the URL
// line is emitted only when a URL is given.
func (f *TicketFormatter) Format(prefix string, ticket int, user, summary, action, url string) []string {
	if prefix == "" {
		prefix = "Ticket #"
	}
	if user == "" {
		user = "unknown"
	}
	user = f.aliases.Resolve(user)

	lines := []string{fmt.Sprintf("%s%d %s by %s++: %s", prefix, ticket, action, user, summary)}
	if url != "" {
		lines = append(lines, fmt.Sprintf("%s%d: %s", prefix, ticket, url))
	}
	return lines
}
