package usecase

import (
	"context"

	"slack-gpt-bot/internal/entities"
)

// SummaryUsecaseInterface abstracts the PR summary pipeline for the delivery layer.
type SummaryUsecaseInterface interface {
	// ProcessPRSummary runs the cache-first summary pipeline and delivers its
	// outcome, success or failure, to the deferred response URL. It never
	// returns an error: every failure is terminal for the invocation and is
	// converted into a user-facing message.
	ProcessPRSummary(ctx context.Context, prURL, responseURL string)
}

// WebhookUsecaseInterface abstracts GitHub webhook processing.
type WebhookUsecaseInterface interface {
	HandlePushEvent(ctx context.Context, event entities.PushEvent) entities.WebhookResult
	HandlePRAction(ctx context.Context, action, prURL string) entities.WebhookResult
}
