package poll

import (
	"context"
	"sync"
	"time"

	"github.com/karmabot/karmalog/internal/feed"
	"github.com/karmabot/karmalog/internal/fetch"
	"github.com/karmabot/karmalog/internal/githubsrc"
)

// GoogleCodeSource polls a project's Subversion activity feed.
type GoogleCodeSource struct {
	client  *fetch.Client
	project string
	url     string
}

// NewGoogleCodeSource builds a source for a recognized feed URL. The
// feed document lives under the project page.
func NewGoogleCodeSource(client *fetch.Client, project, url string) *GoogleCodeSource {
	return &GoogleCodeSource{client: client, project: project, url: url}
}

func (s *GoogleCodeSource) Project() string {
	return s.project
}

func (s *GoogleCodeSource) Fetch(ctx context.Context) ([]feed.Item, error) {
	return s.client.ProjectFeed(ctx, s.url)
}

// GitHubSource wraps a commit source, advancing its since-cursor after
// each successful poll so only new commits come back.
type GitHubSource struct {
	src *githubsrc.Source

	mu    sync.Mutex
	since time.Time
}

// NewGitHubSource starts polling from now; older history is not
// replayed on startup.
func NewGitHubSource(src *githubsrc.Source) *GitHubSource {
	return &GitHubSource{src: src, since: time.Now().UTC()}
}

func (s *GitHubSource) Project() string {
	return s.src.Project()
}

func (s *GitHubSource) Fetch(ctx context.Context) ([]feed.Item, error) {
	s.mu.Lock()
	since := s.since
	s.mu.Unlock()

	items, err := s.src.Fetch(ctx, since)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.since = time.Now().UTC()
	s.mu.Unlock()
	return items, nil
}
