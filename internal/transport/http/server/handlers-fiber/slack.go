package handlers_fiber

import (
	"context"
	"net/http"
	"strings"

	"slack-gpt-bot/internal/entities"

	"github.com/gofiber/fiber/v2"
)

const (
	invalidLinkResponse = "Please provide a valid GitHub PR link."
	analyzingResponse   = "🔄 Analyzing PR... This may take a moment. I'll update you shortly!"
)

// PostSummarizePR handles the slash command: validate the PR link, queue the
// summary pipeline, and send the immediate acknowledgment. The deferred
// result arrives later through the response URL.
func (h *Handler) PostSummarizePR(c *fiber.Ctx) error {
	prURL := c.FormValue("text")
	responseURL := c.FormValue("response_url")

	if !strings.Contains(prURL, "github.com") || responseURL == "" {
		return c.Status(http.StatusOK).SendString(invalidLinkResponse)
	}
	if _, err := entities.ParsePRIdentity(prURL); err != nil {
		return c.Status(http.StatusOK).SendString(invalidLinkResponse)
	}

	// The pipeline outlives this request; it carries its own deadline.
	go h.uc.ProcessPRSummary(context.Background(), prURL, responseURL)

	return c.Status(http.StatusOK).SendString(analyzingResponse)
}

// PostSlackEvents answers Slack's URL verification challenge and
// acknowledges everything else.
func (h *Handler) PostSlackEvents(c *fiber.Ctx) error {
	var payload struct {
		Type      string `json:"type"`
		Challenge string `json:"challenge"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	if payload.Type == "url_verification" {
		return c.Status(http.StatusOK).JSON(fiber.Map{"challenge": payload.Challenge})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}
