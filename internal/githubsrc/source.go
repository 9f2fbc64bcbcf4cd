// Package githubsrc adapts GitHub commit activity into raw feed items,
// so the same pipeline that handles Subversion feeds can attribute
// GitHub commits.
package githubsrc

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"

	"github.com/karmabot/karmalog/internal/feed"
)

// Source fetches recent commits for one repository.
type Source struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	owner       string
	repo        string
}

// New creates a source with rate limiting. An empty token means
// unauthenticated access.
func New(token string, rateLimit int, owner, repo string) *Source {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if rateLimit <= 0 {
		rateLimit = 1
	}

	return &Source{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		owner:       owner,
		repo:        repo,
	}
}

// Project returns the feed identifier items from this source carry.
func (s *Source) Project() string {
	return s.repo
}

// Fetch lists commits since the given time, newest first as GitHub
// returns them, adapted to raw feed items. The commit message is
// entity-encoded to match the feed-item contract; the formatter decodes
// it again downstream.
func (s *Source) Fetch(ctx context.Context, since time.Time) ([]feed.Item, error) {
	opts := &github.CommitsListOptions{
		Since:       since,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var items []feed.Item
	for {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		commits, resp, err := s.client.Repositories.ListCommits(ctx, s.owner, s.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("fetch commits: %w", err)
		}

		for _, commit := range commits {
			items = append(items, Adapt(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return items, nil
}

// Adapt converts one GitHub commit to a raw feed item.
func Adapt(commit *github.RepositoryCommit) feed.Item {
	author := commit.GetAuthor().GetLogin()
	if author == "" {
		author = commit.GetCommit().GetAuthor().GetName()
	}

	// Zero-padded UTC ISO-8601, so lexical ordering stays correct.
	updated := commit.GetCommit().GetAuthor().GetDate().UTC().Format(time.RFC3339)

	return feed.Item{
		Author:  author,
		Link:    commit.GetHTMLURL(),
		Updated: feed.TimeKey(updated),
		Content: html.EscapeString(commit.GetCommit().GetMessage()),
	}
}
