package githubsrc

import (
	"testing"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"

	"github.com/karmabot/karmalog/internal/feed"
)

func strPtr(s string) *string { return &s }

func TestAdapt(t *testing.T) {
	date := time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC)
	commit := &github.RepositoryCommit{
		Author:  &github.User{Login: strPtr("wcoleda")},
		HTMLURL: strPtr("https://github.com/parrot/parrot/commit/0123456789abcdef0123456789abcdef01234567"),
		Commit: &github.Commit{
			Author: &github.CommitAuthor{
				Name: strPtr("Will Coleda"),
				Date: &github.Timestamp{Time: date},
			},
			Message: strPtr("Fix <stdio.h> include & warnings"),
		},
	}

	item := Adapt(commit)
	assert.Equal(t, "wcoleda", item.Author)
	assert.Equal(t, feed.TimeKey("2020-03-04T05:06:07Z"), item.Updated)
	// Entity-encoded, matching the raw feed-item contract.
	assert.Equal(t, "Fix &lt;stdio.h&gt; include &amp; warnings", item.Content)
}

func TestAdaptFallsBackToCommitAuthorName(t *testing.T) {
	commit := &github.RepositoryCommit{
		Commit: &github.Commit{
			Author:  &github.CommitAuthor{Name: strPtr("Will Coleda")},
			Message: strPtr("m"),
		},
	}

	assert.Equal(t, "Will Coleda", Adapt(commit).Author)
}
