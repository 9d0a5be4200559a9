// Package domain contains the orchestration logic for PR summaries and
// webhook-driven notifications.
package domain

import (
	"context"
	"time"

	"slack-gpt-bot/internal/cache"
	"slack-gpt-bot/internal/entities"

	"go.uber.org/zap"
)

// Fetcher retrieves PR metadata and unified diff text from the code host.
type Fetcher interface {
	FetchPullRequest(ctx context.Context, id entities.PRIdentity) (entities.PRMetadata, string, error)
}

// Summarizer produces a natural-language summary of a PR. Implementations
// degrade to a fallback string instead of failing.
type Summarizer interface {
	Summarize(ctx context.Context, title, description, diff string) string
}

// Notifier delivers text messages to the chat platform.
type Notifier interface {
	PostToChannel(ctx context.Context, channel, text string) entities.SlackMessageResult
	PostToResponseURL(ctx context.Context, responseURL, text string)
}

// Options carries the orchestrator's fixed parameters.
type Options struct {
	// Channel is the default notification destination for webhook events.
	Channel string
	// Owner is the hosting account merge events synthesize PR URLs under.
	Owner string
	// CacheTTL is the lifetime of a written PR record.
	CacheTTL time.Duration
	// PipelineTimeout bounds one whole summary pipeline run.
	PipelineTimeout time.Duration
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	log        *zap.SugaredLogger
	store      cache.Store
	fetcher    Fetcher
	summarizer Summarizer
	notifier   Notifier
	opts       Options
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	store cache.Store,
	fetcher Fetcher,
	summarizer Summarizer,
	notifier Notifier,
	opts Options,
) *Usecase {
	return &Usecase{
		log:        log.Named("usecase"),
		store:      store,
		fetcher:    fetcher,
		summarizer: summarizer,
		notifier:   notifier,
		opts:       opts,
	}
}
