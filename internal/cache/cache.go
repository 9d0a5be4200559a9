// Package cache provides the factory and interfaces for the PR record store.
package cache

import (
	"context"
	"fmt"
	"time"

	"slack-gpt-bot/config"
	"slack-gpt-bot/internal/cache/redis"
	"slack-gpt-bot/internal/entities"

	"go.uber.org/zap"
)

// FieldState is the record field holding the PR lifecycle label.
const FieldState = "state"

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// RecordInterface exposes PR record operations. Write fully overwrites a
// record and resets its expiry; Read reports an explicit miss instead of a
// partial value.
type RecordInterface interface {
	Exists(ctx context.Context, key string) (bool, error)
	Write(ctx context.Context, key string, rec entities.PRRecord, ttl time.Duration) error
	UpdateField(ctx context.Context, key, field, value string) (entities.UpdateOutcome, error)
	Read(ctx context.Context, key string) (entities.PRRecord, bool, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// Store aggregates the cache interfaces.
type Store interface {
	LifecycleInterface
	RecordInterface
}

// New constructs a cache backend by name.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config) (Store, error) {
	switch name {
	case "redis":
		return redis.New(ctx, log, cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", name)
	}
}
