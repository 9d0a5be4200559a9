package usecase

import (
	"slack-gpt-bot/internal/cache"
	"slack-gpt-bot/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	SummaryUsecaseInterface
	WebhookUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	store cache.Store,
	fetcher domain.Fetcher,
	summarizer domain.Summarizer,
	notifier domain.Notifier,
	opts domain.Options,
) InterfaceUsecase {
	return domain.New(log, store, fetcher, summarizer, notifier, opts)
}
