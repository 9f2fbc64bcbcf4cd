package karma

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmabot/karmalog/internal/feed"
)

const nbsp4 = "&nbsp;&nbsp;&nbsp;&nbsp;"

func newCommitFormatter(t *testing.T) *CommitFormatter {
	t.Helper()
	return NewCommitFormatter(NewRenderer(testTable(t)))
}

func TestFormatCommitWithChangedPaths(t *testing.T) {
	f := newCommitFormatter(t)

	content := strings.Join([]string{
		"Changed Paths:",
		nbsp4 + "Modify" + nbsp4 + "/src/a.c",
		nbsp4 + "Add" + nbsp4 + "/src/b.c",
		"",
		"Fix the frobnicator &amp; friends<br/>",
	}, "\n")

	item := feed.Item{
		Author:  "wcoleda",
		Link:    "http://code.google.com/p/parrot/source/detail?r=43210",
		Content: content,
	}

	lines := f.Format("parrot", "43210", item)
	assert.Equal(t, []string{
		"parrot: r43210 | coke++ | src/ (2 files):",
		"parrot: Fix the frobnicator & friends",
		"parrot: review: http://code.google.com/p/parrot/source/detail?r=43210",
	}, lines)
}

func TestFormatCommitSingleFilePrefixIsFullPath(t *testing.T) {
	f := newCommitFormatter(t)

	content := "Changed Paths:\n" + nbsp4 + "Modify" + nbsp4 + "/docs/intro.pod\n\nTypo fix\n"
	lines := f.Format("parrot", "7", feed.Item{Author: "jkeenan", Link: "x?r=7", Content: content})

	require.NotEmpty(t, lines)
	assert.Equal(t, "parrot: r7 | jkeenan++ | docs/intro.pod:", lines[0])
}

func TestFormatCommitRenameAnnotationConsumesTwoLines(t *testing.T) {
	f := newCommitFormatter(t)

	content := strings.Join([]string{
		"Changed Paths:",
		nbsp4 + "Add" + nbsp4 + "/src/new.c",
		" (from /src/old.c:r100)",
		"this line is swallowed with the annotation",
		nbsp4 + "Modify" + nbsp4 + "/src/other.c",
		"",
		"Move things around",
	}, "\n")

	lines := f.Format("parrot", "8", feed.Item{Author: "coke", Link: "x?r=8", Content: content})
	assert.Equal(t, []string{
		"parrot: r8 | coke++ | src/ (2 files):",
		"parrot: Move things around",
		"parrot: review: x?r=8",
	}, lines)
}

func TestFormatCommitLoneSpaceContinuationLines(t *testing.T) {
	f := newCommitFormatter(t)

	content := strings.Join([]string{
		"Changed Paths:",
		nbsp4 + "Modify" + nbsp4 + "/src/a.c",
		" ",
		nbsp4 + "Modify" + nbsp4 + "/src/b.c",
		"",
		"log",
	}, "\n")

	lines := f.Format("parrot", "9", feed.Item{Author: "coke", Link: "x?r=9", Content: content})
	require.NotEmpty(t, lines)
	assert.Equal(t, "parrot: r9 | coke++ | src/ (2 files):", lines[0])
}

func TestFormatCommitBlockStopsAtLogBodyLine(t *testing.T) {
	f := newCommitFormatter(t)

	// The first non-bullet, non-annotation line belongs to the log
	// body even though the blank line has not been reached yet.
	content := strings.Join([]string{
		"Changed Paths:",
		nbsp4 + "Modify" + nbsp4 + "/src/a.c",
		"not a bullet line",
		"more log",
	}, "\n")

	lines := f.Format("parrot", "10", feed.Item{Author: "coke", Link: "x?r=10", Content: content})
	assert.Equal(t, []string{
		"parrot: r10 | coke++ | src/a.c:",
		"parrot: not a bullet line",
		"parrot: more log",
		"parrot: review: x?r=10",
	}, lines)
}

func TestFormatCommitNoChangedPathsHeader(t *testing.T) {
	f := newCommitFormatter(t)

	lines := f.Format("parrot", "11", feed.Item{Author: "coke", Link: "x?r=11", Content: "Just a log message\n"})
	assert.Equal(t, []string{
		"parrot: r11 | coke++ | /:",
		"parrot: Just a log message",
		"parrot: review: x?r=11",
	}, lines)
}

func TestFormatCommitEmptyContentDegradesGracefully(t *testing.T) {
	f := newCommitFormatter(t)

	lines := f.Format("parrot", "12", feed.Item{Author: "coke", Link: "x?r=12", Content: ""})
	assert.Equal(t, []string{
		"parrot: r12 | coke++ | /:",
		"parrot: review: x?r=12",
	}, lines)
}

func TestFormatCommitTruncatesFullCommitHashLinks(t *testing.T) {
	f := newCommitFormatter(t)

	link := "https://github.com/parrot/parrot/commit/0123456789abcdef0123456789abcdef01234567"
	lines := f.Format("parrot", "13", feed.Item{Author: "coke", Link: link, Content: "log"})

	require.Len(t, lines, 2)
	assert.Equal(t, "parrot: review: https://github.com/parrot/parrot/commit/0123456789", lines[1])
}

func TestFormatCommitLeavesOtherLinksUntouched(t *testing.T) {
	f := newCommitFormatter(t)

	link := "http://code.google.com/p/parrot/source/detail?r=14"
	lines := f.Format("parrot", "14", feed.Item{Author: "coke", Link: link, Content: "log"})

	require.Len(t, lines, 2)
	assert.Equal(t, "parrot: review: "+link, lines[1])
}

func TestFormatCommitUnknownRevisionUsesShortHash(t *testing.T) {
	f := newCommitFormatter(t)

	link := "https://github.com/parrot/parrot/commit/0123456789abcdef0123456789abcdef01234567"
	lines := f.Format("parrot", "", feed.Item{Author: "coke", Link: link, Content: "log"})

	require.NotEmpty(t, lines)
	assert.Equal(t, "parrot: 0123456789 | coke++ | /:", lines[0])
}

func TestPathPrefix(t *testing.T) {
	assert.Equal(t, "", pathPrefix(nil))
	assert.Equal(t, "src/a.c", pathPrefix([]string{"/src/a.c"}))
	assert.Equal(t, "src/ (2 files)", pathPrefix([]string{"/src/a.c", "/src/b.c"}))
	// A character-level prefix ending mid-segment is cut back.
	assert.Equal(t, "src/ (2 files)", pathPrefix([]string{"/src/abc.c", "/src/abd.c"}))
	assert.Equal(t, " (2 files)", pathPrefix([]string{"/src/a.c", "/docs/b.pod"}))
}
