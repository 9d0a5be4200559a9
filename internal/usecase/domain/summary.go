package domain

import (
	"context"
	"errors"
	"fmt"

	"slack-gpt-bot/internal/entities"
	"slack-gpt-bot/internal/mapper"
)

// ProcessPRSummary runs the PR summary pipeline for one invocation. A live
// cache record is rendered and delivered with no remote calls; a miss fetches
// metadata and diff, summarizes, writes the record, and delivers it. Every
// failure is caught here, converted to a user-facing message on the deferred
// response URL, and never escalates to the caller.
func (u *Usecase) ProcessPRSummary(ctx context.Context, prURL, responseURL string) {
	ctx, cancel := context.WithTimeout(ctx, u.opts.PipelineTimeout)
	defer cancel()

	if err := u.runSummaryPipeline(ctx, prURL, responseURL); err != nil {
		u.deliverFailure(ctx, prURL, responseURL, err)
	}
}

func (u *Usecase) runSummaryPipeline(ctx context.Context, prURL, responseURL string) error {
	rec, ok, err := u.store.Read(ctx, prURL)
	if err != nil {
		return err
	}
	if ok {
		u.log.Infow("cache hit", "pr_url", prURL)
		u.notifier.PostToResponseURL(ctx, responseURL, mapper.ToSlackText(rec))
		return nil
	}

	id, err := entities.ParsePRIdentity(prURL)
	if err != nil {
		return err
	}

	meta, diff, err := u.fetcher.FetchPullRequest(ctx, id)
	if err != nil {
		return err
	}

	summary := u.summarizer.Summarize(ctx, meta.Title, meta.Description, diff)

	rec = mapper.ToRecord(meta, summary)
	if err := u.store.Write(ctx, prURL, rec, u.opts.CacheTTL); err != nil {
		return err
	}
	u.log.Infow("pr summarized", "pr_url", prURL, "files_changed", rec.FilesChanged)

	u.notifier.PostToResponseURL(ctx, responseURL, mapper.ToSlackText(rec))
	return nil
}

// deliverFailure maps a pipeline error onto its user-facing message and cache
// cleanup. Deleting on error guarantees the next request retries fresh; the
// timeout branch leaves the cache untouched since nothing was written this
// cycle. Delivery and cleanup run detached from the pipeline deadline so a
// timed-out run can still report itself.
func (u *Usecase) deliverFailure(ctx context.Context, prURL, responseURL string, err error) {
	var (
		missing *entities.MissingFieldError
		status  *entities.APIStatusError
	)

	userMsg := ""
	invalidate := true
	switch {
	case errors.As(err, &missing):
		userMsg = fmt.Sprintf("❌ Missing data in response: %s", missing.Field)
	case errors.As(err, &status):
		userMsg = fmt.Sprintf("❌ GitHub API error: %d", status.StatusCode)
	case errors.Is(err, entities.ErrFetchTimeout), errors.Is(err, context.DeadlineExceeded):
		userMsg = "❌ Request timed out. The PR might be too large."
		invalidate = false
	default:
		userMsg = fmt.Sprintf("❌ Error analyzing PR: %v", err)
	}

	u.log.Errorw("summary pipeline failed", "pr_url", prURL, "error", err)

	detached := context.WithoutCancel(ctx)
	u.notifier.PostToResponseURL(detached, responseURL, userMsg)

	if invalidate {
		if _, derr := u.store.Delete(detached, prURL); derr != nil {
			u.log.Errorw("cache invalidation failed", "pr_url", prURL, "error", derr)
		}
	}
}
