package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"

	"github.com/KOFI-GYIMAH/github-repos/internal/models"
	"github.com/KOFI-GYIMAH/github-repos/pkg/errors"
	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.github.com"
	MediaType      = "application/vnd.github.v3+json"
	UserAgent      = "github-repos-client"

	listRepositoriesPath = "/user/repos?sort=updated&direction=desc"

	// errorBodyLimit bounds how much of a failed response is kept on RequestError.
	errorBodyLimit = 64 << 10
)

// Client talks to the GitHub REST API. It is immutable after NewClient and safe
// for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	rate       *RateObserver
}

type Option func(*options)

type options struct {
	baseURL   string
	transport http.RoundTripper
	sinks     []models.RequestSink
}

// WithBaseURL points the client at another API root, e.g. GitHub Enterprise.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTransport replaces the RoundTripper the filter chain ends in.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithRequestSinks replaces the default LoggerSink. Sinks run in order.
func WithRequestSinks(sinks ...models.RequestSink) Option {
	return func(o *options) {
		o.sinks = sinks
	}
}

func NewClient(creds Credentials, opts ...Option) *Client {
	o := options{
		baseURL:   DefaultBaseURL,
		transport: http.DefaultTransport,
		sinks:     []models.RequestSink{LoggerSink{}},
	}
	for _, opt := range opts {
		opt(&o)
	}

	rate := NewRateObserver()
	transport := chain(o.transport,
		defaultHeader("Content-Type", MediaType),
		defaultHeader("User-Agent", UserAgent),
		basicAuth(creds, apiHost(o.baseURL)),
		logRequest(o.sinks...),
		rate.Filter,
	)

	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    o.baseURL,
		rate:       rate,
	}
}

// RateLimit returns the last rate budget observed on a response.
func (c *Client) RateLimit() RateLimit {
	return c.rate.Snapshot()
}

// makeRequest sends the request and turns every non-2xx status into a
// RequestError. On success the caller owns the response body.
func (c *Client) makeRequest(ctx context.Context, method, path string) (*http.Response, error) {
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, errors.New(
			"GITHUB_REQUEST_BUILD_ERROR",
			"Failed to create HTTP request",
			fmt.Sprintf("Could not build %s %s", method, target),
			err,
			errors.LevelError,
		)
	}
	req.Header.Set("Accept", MediaType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(
			"GITHUB_TRANSPORT_ERROR",
			"Failed to reach GitHub API",
			fmt.Sprintf("Request %s %s did not complete", method, target),
			&errors.TransportError{Method: method, URL: target, Err: unwrapURLError(err)},
			errors.LevelError,
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		reqErr := &errors.RequestError{Method: method, URL: target, StatusCode: resp.StatusCode, Body: body}

		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.New(
				"GITHUB_NOT_FOUND",
				"Resource not found on GitHub",
				fmt.Sprintf("GitHub API returned 404 for %s", path),
				reqErr,
				errors.LevelInfo,
			)
		}
		return nil, errors.New(
			"GITHUB_REQUEST_ERROR",
			"Unexpected response from GitHub API",
			fmt.Sprintf("GitHub API returned status %d for %s %s", resp.StatusCode, method, path),
			reqErr,
			errors.LevelError,
		)
	}

	return resp, nil
}

// GetRepository fetches owner/repo. The identifiers are not validated; a
// malformed name surfaces as GitHub's own error response.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	path := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))

	resp, err := c.makeRequest(ctx, http.MethodGet, path)
	if err != nil {
		var reqErr *errors.RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound {
			return nil, errors.New(
				"REPOSITORY_NOT_FOUND",
				"Repository not found on GitHub",
				fmt.Sprintf("%s/%s does not exist or is not visible to these credentials", owner, repo),
				reqErr,
				errors.LevelInfo,
			)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body := &bodyReader{r: resp.Body}
	var repository Repository
	if err := json.NewDecoder(body).Decode(&repository); err != nil {
		return nil, c.readError(ctx, http.MethodGet, path, body, err, fmt.Sprintf("Could not decode repository %s/%s from GitHub API", owner, repo))
	}

	logger.Debug("Fetched repository %s", repository.FullName)
	return &repository, nil
}

// ListRepositories returns the authenticated user's repositories, most
// recently updated first. Nothing is sent until the sequence is ranged over,
// and every range sends a fresh request. Records are decoded one at a time
// from the response body. A failure is yielded once as the final element.
func (c *Client) ListRepositories(ctx context.Context) iter.Seq2[*Repository, error] {
	return func(yield func(*Repository, error) bool) {
		resp, err := c.makeRequest(ctx, http.MethodGet, listRepositoriesPath)
		if err != nil {
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		body := &bodyReader{r: resp.Body}
		dec := json.NewDecoder(body)

		tok, err := dec.Token()
		if err != nil {
			yield(nil, c.readError(ctx, http.MethodGet, listRepositoriesPath, body, err, "Could not read the repository list from GitHub API"))
			return
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			yield(nil, decodeError(fmt.Errorf("expected JSON array, got %v", tok), "GitHub API did not return a repository list"))
			return
		}

		count := 0
		for dec.More() {
			var repository Repository
			if err := dec.Decode(&repository); err != nil {
				yield(nil, c.readError(ctx, http.MethodGet, listRepositoriesPath, body, err, fmt.Sprintf("Could not decode repository %d of the list", count+1)))
				return
			}
			count++
			if !yield(&repository, nil) {
				return
			}
		}

		if _, err := dec.Token(); err != nil {
			yield(nil, c.readError(ctx, http.MethodGet, listRepositoriesPath, body, err, "Repository list from GitHub API was truncated"))
			return
		}

		logger.Debug("Streamed %d repositories from GitHub", count)
	}
}

// CollectRepositories drains seq, stopping at the first error.
func CollectRepositories(seq iter.Seq2[*Repository, error]) ([]*Repository, error) {
	repos := []*Repository{}
	for repo, err := range seq {
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// bodyReader keeps the first failure of the underlying connection, so a
// dropped or cancelled stream is not reported as malformed JSON.
type bodyReader struct {
	r   io.Reader
	err error
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF && b.err == nil {
		b.err = err
	}
	return n, err
}

// readError classifies a failure while consuming a response body. Read
// failures of the connection, including context cancellation, are transport
// errors; anything the decoder rejects on a clean stream is a decode error.
func (c *Client) readError(ctx context.Context, method, path string, body *bodyReader, err error, detail string) error {
	if body.err == nil {
		return decodeError(err, detail)
	}

	cause := unwrapURLError(body.err)
	if ctxErr := ctx.Err(); ctxErr != nil {
		cause = ctxErr
	}

	target := c.baseURL + path
	return errors.New(
		"GITHUB_TRANSPORT_ERROR",
		"Failed to reach GitHub API",
		fmt.Sprintf("Response to %s %s was interrupted", method, target),
		&errors.TransportError{Method: method, URL: target, Err: cause},
		errors.LevelError,
	)
}

func decodeError(err error, detail string) error {
	return errors.New(
		"GITHUB_DECODE_ERROR",
		"Failed to parse GitHub API response",
		detail,
		&errors.DecodeError{Err: err},
		errors.LevelError,
	)
}

func apiHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
