package handlers_fiber

import (
	"net/http"

	"slack-gpt-bot/internal/entities"

	"github.com/gofiber/fiber/v2"
)

const githubEventHeader = "X-Github-Event"

// PostGitHubPushes handles push webhooks and notifies the channel when a push
// is classified as a PR merge.
func (h *Handler) PostGitHubPushes(c *fiber.Ctx) error {
	eventKind := c.Get(githubEventHeader)
	if eventKind == "ping" {
		h.log.Infow("received github webhook ping")
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":  "pong",
			"message": "Webhook configured successfully",
		})
	}

	if eventKind != "push" {
		h.log.Infow("github event not processed", "event", eventKind)
		return writeResult(c, entities.WebhookResult{
			Status:  entities.WebhookIgnored,
			Message: "Event '" + eventKind + "' not processed",
		})
	}

	var event entities.PushEvent
	if err := c.BodyParser(&event); err != nil || len(c.Body()) == 0 {
		h.log.Warnw("invalid or empty push payload", "error", err)
		return writeResult(c, entities.WebhookResult{
			Status:  entities.WebhookIgnored,
			Message: "Empty or invalid request body",
		})
	}

	return writeResult(c, h.uc.HandlePushEvent(c.Context(), event))
}

// PostGitHubPRs handles pull_request action webhooks (closed, reopened, ...).
func (h *Handler) PostGitHubPRs(c *fiber.Ctx) error {
	eventKind := c.Get(githubEventHeader)
	if eventKind == "ping" {
		h.log.Infow("received github webhook ping")
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":  "pong",
			"message": "Webhook configured successfully",
		})
	}

	var payload struct {
		Action      string `json:"action"`
		PullRequest *struct {
			HTMLURL string `json:"html_url"`
		} `json:"pull_request"`
	}
	if err := c.BodyParser(&payload); err != nil {
		h.log.Warnw("invalid pr action payload", "error", err)
		return writeResult(c, entities.WebhookResult{
			Status:  entities.WebhookIgnored,
			Message: "Empty or invalid request body",
		})
	}
	if payload.Action == "" || payload.PullRequest == nil {
		return writeResult(c, entities.WebhookResult{
			Status:  entities.WebhookError,
			Message: "Missing PR action/info.",
		})
	}
	if payload.PullRequest.HTMLURL == "" {
		return writeResult(c, entities.WebhookResult{
			Status:  entities.WebhookError,
			Message: "Missing PR URL.",
		})
	}

	return writeResult(c, h.uc.HandlePRAction(c.Context(), payload.Action, payload.PullRequest.HTMLURL))
}

// writeResult answers a webhook with its outcome body; GitHub only needs a
// 200, the status travels inside the payload.
func writeResult(c *fiber.Ctx, res entities.WebhookResult) error {
	return c.Status(http.StatusOK).JSON(res)
}
