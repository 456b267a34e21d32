// Package github implements the TableStore port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/dltoledo/pautapanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TableStore = (*Client)(nil)

// Client stores the schedule dataset as a single file in a GitHub repository.
// Reads go through the contents API (one authenticated client serves both
// directions, so private repositories work); writes use the contents PUT
// endpoint with the revision sha attached for optimistic concurrency.
type Client struct {
	gh     *gh.Client
	owner  string
	repo   string
	path   string
	branch string
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
//
// The underlying http.Client gets an explicit timeout so a hung network call
// cannot block an interaction indefinitely.
func NewClient(token, owner, repo, path, branch string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	rateLimitClient.Timeout = 30 * time.Second
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{
		gh:     client,
		owner:  owner,
		repo:   repo,
		path:   path,
		branch: branch,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, owner, repo, path, branch string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{
		gh:     client,
		owner:  owner,
		repo:   repo,
		path:   path,
		branch: branch,
	}, nil
}

// Download returns the raw bytes of the file's latest revision on the
// configured branch.
func (c *Client) Download(ctx context.Context) ([]byte, error) {
	file, _, resp, err := c.getContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("downloading %s@%s: %w", c.path, c.branch, err)
	}

	logRateLimit(resp, c.path+"/download")

	if file == nil {
		return nil, fmt.Errorf("%s is a directory, expected a file", c.path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding content of %s: %w", c.path, err)
	}

	return []byte(content), nil
}

// Revision returns the current content sha of the file. A 404 means the file
// has never been written and is not an error.
func (c *Client) Revision(ctx context.Context) (string, bool, error) {
	file, _, resp, err := c.getContents(ctx)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading revision of %s@%s: %w", c.path, c.branch, err)
	}

	logRateLimit(resp, c.path+"/revision")

	if file == nil {
		return "", false, fmt.Errorf("%s is a directory, expected a file", c.path)
	}

	return file.GetSHA(), true, nil
}

// Put replaces the file wholesale. With sha == "" the file is created;
// otherwise the sha is attached and GitHub rejects the write with a conflict
// status when the stored revision has moved, which maps to
// driven.ErrRevisionConflict.
func (c *Client) Put(ctx context.Context, content []byte, message, sha string) (string, error) {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		Content: content,
		Branch:  gh.Ptr(c.branch),
	}

	var (
		res  *gh.RepositoryContentResponse
		resp *gh.Response
		err  error
	)
	if sha == "" {
		res, resp, err = c.gh.Repositories.CreateFile(ctx, c.owner, c.repo, c.path, opts)
	} else {
		opts.SHA = gh.Ptr(sha)
		res, resp, err = c.gh.Repositories.UpdateFile(ctx, c.owner, c.repo, c.path, opts)
	}
	if err != nil {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusConflict {
			return "", fmt.Errorf("%w: %s", driven.ErrRevisionConflict, ghErr.Message)
		}
		return "", fmt.Errorf("uploading %s@%s: %w", c.path, c.branch, err)
	}

	logRateLimit(resp, c.path+"/put")

	return res.GetContent().GetSHA(), nil
}

func (c *Client) getContents(ctx context.Context) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error) {
	return c.gh.Repositories.GetContents(ctx, c.owner, c.repo, c.path, &gh.RepositoryContentGetOptions{
		Ref: c.branch,
	})
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
