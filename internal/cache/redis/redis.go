// Package redis implements the PR record store against Redis.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"slack-gpt-bot/config"
	"slack-gpt-bot/internal/entities"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Record field names as stored in the Redis hash.
const (
	fieldAuthor       = "author"
	fieldFilesChanged = "files_changed"
	fieldAdditions    = "additions"
	fieldDeletions    = "deletions"
	fieldHTMLURL      = "html_url"
	fieldState        = "state"
	fieldSummary      = "summary"
)

// Redis wraps a go-redis client and configuration.
type Redis struct {
	baseCtx context.Context
	log     *zap.SugaredLogger
	client  *redis.Client
	cfg     config.RedisConfig
}

// New creates a Redis store instance.
func New(ctx context.Context, log *zap.SugaredLogger, cfg *config.Config) *Redis {
	return &Redis{
		baseCtx: ctx,
		log:     log.Named("cache.redis"),
		cfg:     cfg.Redis,
	}
}

// NewWithClient creates a store around an existing client, for tests.
func NewWithClient(log *zap.SugaredLogger, client *redis.Client) *Redis {
	return &Redis{
		baseCtx: context.Background(),
		log:     log.Named("cache.redis"),
		client:  client,
	}
}

// OnStart establishes the connection and verifies it with a ping.
func (r *Redis) OnStart(_ context.Context) error {
	r.client = redis.NewClient(&redis.Options{
		Addr:     r.cfg.Addr(),
		Password: r.cfg.Password,
		DB:       r.cfg.DB,
	})
	if err := r.client.Ping(r.baseCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// OnStop closes the connection.
func (r *Redis) OnStop(_ context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Exists reports whether a non-expired record is present for the key.
func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("exists %q: %w", key, err)
	}
	return n > 0, nil
}

// Write overwrites all record fields and resets expiry to ttl from now.
func (r *Redis) Write(ctx context.Context, key string, rec entities.PRRecord, ttl time.Duration) error {
	fields := map[string]any{
		fieldAuthor:       rec.Author,
		fieldFilesChanged: strconv.Itoa(rec.FilesChanged),
		fieldAdditions:    strconv.Itoa(rec.Additions),
		fieldDeletions:    strconv.Itoa(rec.Deletions),
		fieldHTMLURL:      rec.HTMLURL,
		fieldState:        rec.State,
		fieldSummary:      rec.Summary,
	}
	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("expire %q: %w", key, err)
	}
	return nil
}

// UpdateField mutates a single field of an existing record. A missing key is
// an Ignored outcome, not an error. The key's TTL is left untouched.
func (r *Redis) UpdateField(ctx context.Context, key, field, value string) (entities.UpdateOutcome, error) {
	ok, err := r.Exists(ctx, key)
	if err != nil {
		return entities.FieldIgnored, err
	}
	if !ok {
		return entities.FieldIgnored, nil
	}
	if err := r.client.HSet(ctx, key, field, value).Err(); err != nil {
		return entities.FieldIgnored, fmt.Errorf("update %q field %q: %w", key, field, err)
	}
	return entities.FieldUpdated, nil
}

// Read returns the full record, or ok=false on a cache miss. Numeric fields
// are validated here; absent or garbled values fall back to zero.
func (r *Redis) Read(ctx context.Context, key string) (entities.PRRecord, bool, error) {
	raw, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return entities.PRRecord{}, false, fmt.Errorf("read %q: %w", key, err)
	}
	if len(raw) == 0 {
		return entities.PRRecord{}, false, nil
	}

	rec := entities.PRRecord{
		Author:       raw[fieldAuthor],
		FilesChanged: parseCount(raw[fieldFilesChanged]),
		Additions:    parseCount(raw[fieldAdditions]),
		Deletions:    parseCount(raw[fieldDeletions]),
		HTMLURL:      raw[fieldHTMLURL],
		State:        raw[fieldState],
		Summary:      raw[fieldSummary],
	}
	return rec, true, nil
}

// Delete removes the record if present and reports whether anything was removed.
func (r *Redis) Delete(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("delete %q: %w", key, err)
	}
	return n > 0, nil
}

func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
