// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"slack-gpt-bot/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the Slack and GitHub routes over the usecase layer.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, uc usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log.Named("http"),
		uc:  uc,
	}
}

// Register attaches all routes to the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/slack/events", h.PostSlackEvents)
	app.Post("/slack/summarizepr", h.PostSummarizePR)
	app.Post("/github/postpushes", h.PostGitHubPushes)
	app.Post("/github/postprs", h.PostGitHubPRs)
}
