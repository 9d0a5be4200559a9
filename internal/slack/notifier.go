// Package slack implements the notifier against the Slack API.
package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"slack-gpt-bot/internal/entities"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

const defaultRetryAfter = time.Second

// ChatPoster is the slice of the slack-go API the notifier uses.
type ChatPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier delivers text messages to Slack, either as channel posts with
// rate-limit retry or as one-shot deferred responses to a response URL.
type Notifier struct {
	api        ChatPoster
	httpClient *http.Client
	log        *zap.SugaredLogger
	maxRetries int
}

// NewNotifier creates a notifier with the bot token. maxRetries bounds the
// rate-limit retries after the first channel-post attempt.
func NewNotifier(log *zap.SugaredLogger, botToken string, notifyTimeout time.Duration, maxRetries int) *Notifier {
	return &Notifier{
		api:        slack.New(botToken),
		httpClient: &http.Client{Timeout: notifyTimeout},
		log:        log.Named("slack"),
		maxRetries: maxRetries,
	}
}

// NewNotifierWithAPI creates a notifier around an existing API client, for tests.
func NewNotifierWithAPI(log *zap.SugaredLogger, api ChatPoster, httpClient *http.Client, maxRetries int) *Notifier {
	return &Notifier{
		api:        api,
		httpClient: httpClient,
		log:        log.Named("slack"),
		maxRetries: maxRetries,
	}
}

// PostToChannel posts a message to a channel. When Slack rate-limits the
// call, the server-provided delay (or one second if absent) is waited and the
// post retried, up to maxRetries retries. Any other failure terminates
// immediately. The result is always a status value, never a panic or error
// escaping this boundary.
func (n *Notifier) PostToChannel(ctx context.Context, channel, text string) entities.SlackMessageResult {
	for attempt := 0; ; attempt++ {
		respChannel, timestamp, err := n.api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
		if err == nil {
			n.log.Infow("slack message sent", "channel", respChannel, "ts", timestamp)
			return entities.SlackMessageResult{
				Status:    entities.MessageSuccess,
				Message:   "Slack message sent successfully",
				Timestamp: timestamp,
				Channel:   respChannel,
			}
		}

		var rateLimited *slack.RateLimitedError
		if !errors.As(err, &rateLimited) {
			n.log.Errorw("slack post failed", "channel", channel, "error", err)
			return entities.SlackMessageResult{
				Status:  entities.MessageError,
				Message: fmt.Sprintf("Slack API error: %v", err),
			}
		}

		if attempt >= n.maxRetries {
			n.log.Errorw("slack rate limit retries exhausted", "channel", channel, "attempts", attempt+1)
			return entities.SlackMessageResult{
				Status:  entities.MessageError,
				Message: "Failed to send Slack message after retries",
			}
		}

		delay := retryDelay(rateLimited)
		n.log.Warnw("slack rate limited, retrying", "channel", channel, "retry_after", delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return entities.SlackMessageResult{
				Status:  entities.MessageError,
				Message: fmt.Sprintf("Slack API error: %v", ctx.Err()),
			}
		}
	}
}

// PostToResponseURL delivers a deferred response to the one-time URL supplied
// by the original trigger. The callback has a short validity window, so there
// is no retry; failures are logged and never propagated to the caller.
func (n *Notifier) PostToResponseURL(ctx context.Context, responseURL, text string) {
	msg := &slack.WebhookMessage{
		Text:         text,
		ResponseType: slack.ResponseTypeInChannel,
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, responseURL, n.httpClient, msg); err != nil {
		n.log.Errorw("deferred response delivery failed", "error", err)
	}
}

// retryDelay reads the server-provided backoff, defaulting to one second
// when Slack omits it.
func retryDelay(err *slack.RateLimitedError) time.Duration {
	if err.RetryAfter <= 0 {
		return defaultRetryAfter
	}
	return err.RetryAfter
}
