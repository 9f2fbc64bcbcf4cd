package karma

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/karmabot/karmalog/internal/feed"
)

// Commit feed bodies embed "<br/>" tokens alongside real newlines.
const lineBreakToken = "<br/>"

var (
	// A changed-paths bullet after entity decoding: four non-breaking
	// spaces, the operation, four more, then an absolute path.
	changedPathRe = regexp.MustCompile(`^\x{00A0}{4}(?:Modify|Add|Delete)\x{00A0}{4}(/.*)$`)

	// A full commit hash in a code-hosting link, e.g.
	// https://github.com/parrot/parrot/commit/<40 hex>.
	commitLinkRe  = regexp.MustCompile(`commit/[0-9a-fA-F]{40}$`)
	shortCommitRe = regexp.MustCompile(`commit/([0-9a-fA-F]{10})$`)

	logSplitRe = regexp.MustCompile(`[\r\n]+`)
)

// CommitFormatter parses one commit's free-text description into a
// touched-file list, a log body, and a common path prefix, then renders
// the karma message.
type CommitFormatter struct {
	renderer *Renderer
}

// NewCommitFormatter builds a commit formatter over the given renderer.
func NewCommitFormatter(renderer *Renderer) *CommitFormatter {
	return &CommitFormatter{renderer: renderer}
}

// Format renders the karma message lines for one commit. Malformed
// description text degrades to an empty file list and log body rather
// than failing.
func (f *CommitFormatter) Format(feedID, revision string, item feed.Item) []string {
	body := html.UnescapeString(item.Content)
	body = strings.TrimSpace(body)
	body = strings.ReplaceAll(body, lineBreakToken, "")

	lines := strings.Split(body, "\n")
	if len(lines) > 0 && lines[0] == "Changed Paths:" {
		lines = lines[1:]
	}

	files, rest := splitChangedPaths(lines)

	for len(rest) > 0 && strings.TrimSpace(rest[len(rest)-1]) == "" {
		rest = rest[:len(rest)-1]
	}
	logBody := strings.TrimLeft(strings.Join(rest, "\n"), " \t\r\n")

	// Entities can occur in the message text independent of the
	// changed-paths block, so decode once more.
	logBody = html.UnescapeString(logBody)
	logBody = strings.ReplaceAll(logBody, lineBreakToken, "")

	var logLines []string
	if logBody != "" {
		logLines = logSplitRe.Split(logBody, -1)
	}

	link := item.Link
	if commitLinkRe.MatchString(link) {
		link = link[:len(link)-30]
	}

	rev := "r" + revision
	if revision == "" {
		// No Subversion revision in the link; fall back to the short
		// commit hash when there is one.
		if m := shortCommitRe.FindStringSubmatch(link); m != nil {
			rev = m[1]
		} else {
			rev = "r?"
		}
	}

	return f.renderer.Message(feedID, rev, item.Author, logLines, link, pathPrefix(files))
}

// splitChangedPaths consumes the leading changed-paths block and
// returns the touched files plus the lines that belong to the log body.
func splitChangedPaths(lines []string) (files []string, rest []string) {
	i := 0
	for i < len(lines) && lines[i] != "" {
		if m := changedPathRe.FindStringSubmatch(lines[i]); m != nil {
			files = append(files, m[1])
			i++
		} else if strings.HasPrefix(lines[i], " (from /") {
			// Rename/copy source annotation spans this line and the
			// next; neither names a touched file.
			i = min(i+2, len(lines))
		} else {
			// Belongs to the log body, not the file list.
			break
		}
		// Wrapped block lines continue with a lone-space line.
		for i < len(lines) && lines[i] == " " {
			i++
		}
	}
	return files, lines[i:]
}

// pathPrefix computes the longest shared leading path segment across
// the touched files, without its leading slash. With more than one file
// the count is appended, e.g. "src/ (2 files)".
func pathPrefix(files []string) string {
	if len(files) == 0 {
		return ""
	}

	prefix := files[0]
	for _, path := range files[1:] {
		n := 0
		for n < len(prefix) && n < len(path) && prefix[n] == path[n] {
			n++
		}
		prefix = prefix[:n]
	}

	if len(files) > 1 {
		// Cut back to a whole segment; a character-level prefix can end
		// mid-name.
		if idx := strings.LastIndex(prefix, "/"); idx >= 0 {
			prefix = prefix[:idx+1]
		}
	}

	prefix = strings.TrimPrefix(prefix, "/")
	if len(files) > 1 {
		prefix += fmt.Sprintf(" (%d files)", len(files))
	}
	return prefix
}
