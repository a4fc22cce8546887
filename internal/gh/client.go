// Package gh is a minimal GitHub client covering the two calls docdrift
// makes: the latest commit touching a file, and a raw file fetch.
package gh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultAPIBase = "https://api.github.com"
	defaultRawBase = "https://raw.githubusercontent.com"
)

// ErrNoCommits is returned by LatestCommit when the upstream history for the
// given path is empty (file renamed or deleted upstream).
var ErrNoCommits = errors.New("gh: no commits for path")

// Client talks to the GitHub REST and raw-content endpoints.
type Client struct {
	// APIBase and RawBase exist so tests can point the client at a local
	// httptest server. Empty means the public GitHub endpoints.
	APIBase string
	RawBase string

	token string
	http  *http.Client
}

// New returns a Client. token may be empty for anonymous access; timeout
// bounds every request.
func New(token string, timeout time.Duration) *Client {
	return &Client{
		token: token,
		http:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) apiBase() string {
	if c.APIBase != "" {
		return c.APIBase
	}
	return defaultAPIBase
}

func (c *Client) rawBase() string {
	if c.RawBase != "" {
		return c.RawBase
	}
	return defaultRawBase
}

// LatestCommit returns the sha of the most recent commit touching path on
// branch.
func (c *Client) LatestCommit(ctx context.Context, owner, repo, path, branch string) (string, error) {
	q := url.Values{}
	q.Set("path", path)
	q.Set("per_page", "1")
	q.Set("sha", branch)
	u := fmt.Sprintf("%s/repos/%s/%s/commits?%s", c.apiBase(), owner, repo, q.Encode())

	body, err := c.get(ctx, u, "application/vnd.github+json")
	if err != nil {
		return "", err
	}

	var commits []struct {
		SHA string `json:"sha"`
	}
	if err := json.Unmarshal(body, &commits); err != nil {
		return "", fmt.Errorf("decode commits for %s: %w", path, err)
	}
	if len(commits) == 0 || commits[0].SHA == "" {
		return "", fmt.Errorf("%s/%s %s: %w", owner, repo, path, ErrNoCommits)
	}
	return commits[0].SHA, nil
}

// RawFile fetches the raw contents of path at branch.
func (c *Client) RawFile(ctx context.Context, owner, repo, branch, path string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s/%s/%s/%s", c.rawBase(), owner, repo, branch, path)
	return c.get(ctx, u, "")
}

func (c *Client) get(ctx context.Context, u, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("GET %s: unexpected status %s", u, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", u, err)
	}
	return body, nil
}
