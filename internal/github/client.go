// Package github implements the remote fetcher against the GitHub API.
package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	"slack-gpt-bot/internal/entities"

	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const defaultDescription = "No description provided"

// PullRequestsService is the slice of the go-github PR API the client uses.
type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error)
}

// Client fetches PR metadata and diffs.
type Client struct {
	pulls   PullRequestsService
	log     *zap.SugaredLogger
	timeout time.Duration
}

// NewClient creates a GitHub client. An empty token means unauthenticated
// calls with GitHub's lower rate limit.
func NewClient(log *zap.SugaredLogger, token string, timeout time.Duration) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		pulls:   github.NewClient(httpClient).PullRequests,
		log:     log.Named("github"),
		timeout: timeout,
	}
}

// NewClientWithService creates a client around an existing PR service, for tests.
func NewClientWithService(log *zap.SugaredLogger, pulls PullRequestsService, timeout time.Duration) *Client {
	return &Client{
		pulls:   pulls,
		log:     log.Named("github"),
		timeout: timeout,
	}
}

// FetchPullRequest retrieves PR metadata and the unified diff text. Each of
// the two underlying calls is bounded by the configured timeout.
func (c *Client) FetchPullRequest(ctx context.Context, id entities.PRIdentity) (entities.PRMetadata, string, error) {
	meta, err := c.fetchMetadata(ctx, id)
	if err != nil {
		return entities.PRMetadata{}, "", err
	}

	diff, err := c.fetchDiff(ctx, id)
	if err != nil {
		return entities.PRMetadata{}, "", err
	}

	return meta, diff, nil
}

func (c *Client) fetchMetadata(ctx context.Context, id entities.PRIdentity) (entities.PRMetadata, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pr, _, err := c.pulls.Get(callCtx, id.Owner, id.Repo, id.Number)
	if err != nil {
		return entities.PRMetadata{}, classify(callCtx, err)
	}
	if pr == nil {
		return entities.PRMetadata{}, &entities.MissingFieldError{Field: "pull_request"}
	}

	return extractMetadata(pr)
}

func (c *Client) fetchDiff(ctx context.Context, id entities.PRIdentity) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	diff, _, err := c.pulls.GetRaw(callCtx, id.Owner, id.Repo, id.Number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", classify(callCtx, err)
	}
	return diff, nil
}

// extractMetadata validates required fields and applies defaults for the
// optional ones. Author and title absence is a hard error; everything else
// degrades to a default.
func extractMetadata(pr *github.PullRequest) (entities.PRMetadata, error) {
	if pr.GetUser().GetLogin() == "" {
		return entities.PRMetadata{}, &entities.MissingFieldError{Field: "author"}
	}
	if pr.Title == nil {
		return entities.PRMetadata{}, &entities.MissingFieldError{Field: "title"}
	}

	description := pr.GetBody()
	if description == "" {
		description = defaultDescription
	}

	return entities.PRMetadata{
		Title:        pr.GetTitle(),
		Description:  description,
		Author:       pr.GetUser().GetLogin(),
		State:        pr.GetState(),
		HTMLURL:      pr.GetHTMLURL(),
		FilesChanged: pr.GetChangedFiles(),
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
	}, nil
}

// classify maps transport failures onto the error kinds the pipeline
// branches on: timeouts and non-2xx statuses are distinct outcomes.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return entities.ErrFetchTimeout
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &entities.APIStatusError{StatusCode: ghErr.Response.StatusCode}
	}

	return err
}
