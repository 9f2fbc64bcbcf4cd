package karma

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karmabot/karmalog/internal/alias"
)

func TestTicketFormatDefaults(t *testing.T) {
	f := NewTicketFormatter(alias.NewTable())

	lines := f.Format("", 699, "jkeenan", "fix build", "closed", "")
	assert.Equal(t, []string{"Ticket #699 closed by jkeenan++: fix build"}, lines)
}

func TestTicketFormatWithURL(t *testing.T) {
	f := NewTicketFormatter(alias.NewTable())

	lines := f.Format("", 699, "jkeenan", "fix build", "closed", "http://example.org/699")
	assert.Equal(t, []string{
		"Ticket #699 closed by jkeenan++: fix build",
		"Ticket #699: http://example.org/699",
	}, lines)
}

func TestTicketFormatCustomPrefix(t *testing.T) {
	f := NewTicketFormatter(alias.NewTable())

	lines := f.Format("RT #", 1234, "coke", "", "rejected", "")
	assert.Equal(t, []string{"RT #1234 rejected by coke++: "}, lines)
}

func TestTicketFormatMissingUser(t *testing.T) {
	f := NewTicketFormatter(alias.NewTable())

	lines := f.Format("", 1, "", "s", "opened", "")
	assert.Equal(t, []string{"Ticket #1 opened by unknown++: s"}, lines)
}

func TestTicketFormatResolvesAliasWithoutParens(t *testing.T) {
	f := NewTicketFormatter(testTable(t))

	// Resolution applies, but the ticket convention never wraps a name
	// in parentheses even when it contains a space.
	lines := f.Format("", 2, "Will Coleda", "s", "created", "")
	assert.Equal(t, []string{"Ticket #2 created by coke++: s"}, lines)

	lines = f.Format("", 3, "Foo Bar", "s", "created", "")
	assert.Equal(t, []string{"Ticket #3 created by Foo Bar++: s"}, lines)
}
