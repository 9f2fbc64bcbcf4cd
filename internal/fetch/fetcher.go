// Package fetch retrieves the upstream text blobs the pipeline runs
// on: the credits document and per-project activity feeds. A fetch
// failure means the pipeline simply does not run this cycle; the next
// poll tick retries.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	kerrors "github.com/karmabot/karmalog/internal/errors"
	"github.com/karmabot/karmalog/internal/feed"
)

// Client fetches upstream documents with rate limiting.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewClient creates a fetch client limited to rateLimit requests per
// second.
func NewClient(rateLimit int, logger *logrus.Logger) *Client {
	if rateLimit <= 0 {
		rateLimit = 1
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		logger:  logger,
	}
}

// get fetches one URL body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, kerrors.NewNetwork(fmt.Sprintf("fetch %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, kerrors.NewNetwork(fmt.Sprintf("fetch %s: status %d", url, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, kerrors.NewNetwork(fmt.Sprintf("read %s", url), err)
	}
	return body, nil
}

// CreditsDocument fetches the raw credits text.
func (c *Client) CreditsDocument(ctx context.Context, url string) (string, error) {
	c.logger.WithField("url", url).Debug("fetching credits document")
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ProjectFeed fetches and parses a project's activity feed into raw
// items. Item content stays HTML-entity-encoded; decoding belongs to
// the formatter.
func (c *Client) ProjectFeed(ctx context.Context, url string) ([]feed.Item, error) {
	c.logger.WithField("url", url).Debug("fetching activity feed")
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	items, err := ParseAtom(body)
	if err != nil {
		return nil, kerrors.NewParse(fmt.Sprintf("parse feed %s", url), err)
	}
	return items, nil
}
