// Package github provides a client for reading the GitHub Releases API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
)

// Sentinel errors for GitHub operations.
var (
	ErrInvalidRepo    = errors.New("repository must be in format 'owner/repo'")
	ErrInvalidPerPage = errors.New("per page must be between 1 and 100")
)

// DefaultPerPage is the page size requested from the releases endpoint.
const DefaultPerPage = 100

// APIError reports a non-2xx response from the releases endpoint.
type APIError struct {
	StatusCode int
	Page       int
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error on page %d: %d %s: %v", e.Page, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client wraps the GitHub API client for release listing.
type Client struct {
	client  *github.Client
	owner   string
	repo    string
	perPage int
}

// NewClient creates a new GitHub API client for the specified repository.
// Token is optional; when set it raises the API rate limit.
// Repository must be in the format "owner/repo".
func NewClient(token, repository string) (*Client, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Client{
		client:  client,
		owner:   owner,
		repo:    repo,
		perPage: DefaultPerPage,
	}, nil
}

// WithBaseURL points the client at a GitHub Enterprise or mirror API root.
func (c *Client) WithBaseURL(baseURL string) (*Client, error) {
	if baseURL == "" {
		return c, nil
	}
	client, err := c.client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %s: %w", baseURL, err)
	}
	c.client = client
	return c, nil
}

// WithUserAgent sets the User-Agent header sent with every request.
func (c *Client) WithUserAgent(userAgent string) *Client {
	if userAgent != "" {
		c.client.UserAgent = userAgent
	}
	return c
}

// WithPerPage sets the page size used when listing releases.
func (c *Client) WithPerPage(perPage int) (*Client, error) {
	if perPage < 1 || perPage > 100 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPerPage, perPage)
	}
	c.perPage = perPage
	return c, nil
}

// Repository returns the "owner/repo" the client reads from.
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// ListReleases fetches every release of the repository, one page at a time.
// Paging stops at the first empty page or the first page shorter than the page size.
// Any failed page aborts the listing and nothing is returned.
func (c *Client) ListReleases(ctx context.Context) ([]*github.RepositoryRelease, error) {
	if c.client == nil || c.owner == "" || c.repo == "" {
		return nil, fmt.Errorf("client not initialized: use NewClient to create instances")
	}

	var all []*github.RepositoryRelease
	for page := 1; ; page++ {
		opts := &github.ListOptions{Page: page, PerPage: c.perPage}
		releases, resp, err := c.client.Repositories.ListReleases(ctx, c.owner, c.repo, opts)
		if err != nil {
			if resp != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
				return nil, &APIError{StatusCode: resp.StatusCode, Page: page, Err: err}
			}
			return nil, fmt.Errorf("failed to list releases page %d: %w", page, err)
		}

		if len(releases) == 0 {
			break
		}
		all = append(all, releases...)

		if len(releases) < c.perPage {
			break
		}
	}

	return all, nil
}

// parseRepository splits a repository string into owner and repo.
// Returns an error if the format is invalid.
func parseRepository(repository string) (owner, repo string, err error) {
	if repository == "" {
		return "", "", ErrInvalidRepo
	}

	parts := strings.Split(repository, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: got %s", ErrInvalidRepo, repository)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("%w: owner or repo is empty", ErrInvalidRepo)
	}

	return owner, repo, nil
}
