package domain

import (
	"context"
	"fmt"

	"slack-gpt-bot/internal/cache"
	"slack-gpt-bot/internal/entities"
)

// HandlePushEvent runs the merge-notification sub-pipeline: classify the push,
// post the merge message to the channel, then flip the cached record's state
// to merged. A notifier failure short-circuits before the cache update; a
// cache failure never flips an otherwise-successful outcome.
func (u *Usecase) HandlePushEvent(ctx context.Context, event entities.PushEvent) entities.WebhookResult {
	info, ok := InterpretMergeEvent(event, u.opts.Owner)
	if !ok {
		u.log.Infow("push event is not a pr merge", "ref", event.Ref)
		return entities.WebhookResult{
			Status:  entities.WebhookIgnored,
			Message: "Push event but not a PR merge",
		}
	}

	msg := fmt.Sprintf("PR #%s merged from branch '%s'", info.PRNumber, info.BranchName)
	res := u.notifier.PostToChannel(ctx, u.opts.Channel, msg)
	if !res.OK() {
		u.log.Errorw("merge notification failed", "pr_url", info.PRURL, "reason", res.Message)
		return entities.WebhookResult{
			Status:  entities.WebhookError,
			Message: res.Message,
		}
	}

	u.updateCachedState(ctx, info.PRURL, entities.StateMerged)

	return entities.WebhookResult{
		Status:   entities.WebhookSuccess,
		Message:  "PR merge processed and Slack notification sent",
		PRNumber: info.PRNumber,
	}
}

// HandlePRAction notifies the channel about a pull_request action event
// (closed, reopened, ...) and stores the action label as the cached state.
func (u *Usecase) HandlePRAction(ctx context.Context, action, prURL string) entities.WebhookResult {
	msg := fmt.Sprintf("PR %s at %s", action, prURL)
	res := u.notifier.PostToChannel(ctx, u.opts.Channel, msg)
	if !res.OK() {
		u.log.Errorw("pr action notification failed", "pr_url", prURL, "reason", res.Message)
		return entities.WebhookResult{
			Status:  entities.WebhookError,
			Message: res.Message,
		}
	}

	u.updateCachedState(ctx, prURL, action)

	return entities.WebhookResult{
		Status:  entities.WebhookSuccess,
		Message: "PR action processed - message sent!",
	}
}

// updateCachedState applies a lifecycle label to a cached record. An Ignored
// outcome means the PR was never summarized; both that and store errors are
// logged only and never abort the webhook response.
func (u *Usecase) updateCachedState(ctx context.Context, prURL, state string) {
	outcome, err := u.store.UpdateField(ctx, prURL, cache.FieldState, state)
	switch {
	case err != nil:
		u.log.Errorw("cache state update failed", "pr_url", prURL, "state", state, "error", err)
	case outcome == entities.FieldIgnored:
		u.log.Infow("cache state update skipped, no record", "pr_url", prURL, "state", state)
	default:
		u.log.Infow("cache state updated", "pr_url", prURL, "state", state)
	}
}
