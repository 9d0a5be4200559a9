package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slack-gpt-bot/internal/entities"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chatMock struct{ mock.Mock }

var _ ChatPoster = (*chatMock)(nil)

func (m *chatMock) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	args := m.Called(ctx, channelID)
	return args.String(0), args.String(1), args.Error(2)
}

func newTestNotifier(api ChatPoster) *Notifier {
	return NewNotifierWithAPI(zap.NewNop().Sugar(), api, &http.Client{Timeout: time.Second}, 3)
}

func TestPostToChannelSuccess(t *testing.T) {
	api := &chatMock{}
	api.On("PostMessageContext", mock.Anything, "C123").Return("C123", "1700000000.0001", nil).Once()

	res := newTestNotifier(api).PostToChannel(context.Background(), "C123", "hello")

	require.True(t, res.OK())
	require.Equal(t, "1700000000.0001", res.Timestamp)
	require.Equal(t, "C123", res.Channel)
	api.AssertNumberOfCalls(t, "PostMessageContext", 1)
}

func TestPostToChannelRetriesOnRateLimitThenSucceeds(t *testing.T) {
	api := &chatMock{}
	rl := &slack.RateLimitedError{RetryAfter: time.Millisecond}
	api.On("PostMessageContext", mock.Anything, "C123").Return("", "", rl).Times(3)
	api.On("PostMessageContext", mock.Anything, "C123").Return("C123", "1700000000.0002", nil).Once()

	res := newTestNotifier(api).PostToChannel(context.Background(), "C123", "hello")

	require.True(t, res.OK())
	api.AssertNumberOfCalls(t, "PostMessageContext", 4)
}

func TestPostToChannelRateLimitExhaustionReturnsError(t *testing.T) {
	api := &chatMock{}
	rl := &slack.RateLimitedError{RetryAfter: time.Millisecond}
	api.On("PostMessageContext", mock.Anything, "C123").Return("", "", rl)

	res := newTestNotifier(api).PostToChannel(context.Background(), "C123", "hello")

	require.Equal(t, entities.MessageError, res.Status)
	require.Equal(t, "Failed to send Slack message after retries", res.Message)
	api.AssertNumberOfCalls(t, "PostMessageContext", 4)
}

func TestPostToChannelOtherErrorDoesNotRetry(t *testing.T) {
	api := &chatMock{}
	api.On("PostMessageContext", mock.Anything, "C123").Return("", "", errors.New("channel_not_found"))

	res := newTestNotifier(api).PostToChannel(context.Background(), "C123", "hello")

	require.Equal(t, entities.MessageError, res.Status)
	require.Contains(t, res.Message, "channel_not_found")
	api.AssertNumberOfCalls(t, "PostMessageContext", 1)
}

func TestRetryDelayDefaultsToOneSecond(t *testing.T) {
	require.Equal(t, time.Second, retryDelay(&slack.RateLimitedError{}))
	require.Equal(t, 5*time.Second, retryDelay(&slack.RateLimitedError{RetryAfter: 5 * time.Second}))
}

func TestPostToResponseURLDeliversWebhookMessage(t *testing.T) {
	var got struct {
		Text         string `json:"text"`
		ResponseType string `json:"response_type"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := newTestNotifier(&chatMock{})
	n.PostToResponseURL(context.Background(), srv.URL, "deferred result")

	require.Equal(t, "deferred result", got.Text)
	require.Equal(t, "in_channel", got.ResponseType)
}

func TestPostToResponseURLFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := newTestNotifier(&chatMock{})
	// Must not panic or block; failures are logged only.
	n.PostToResponseURL(context.Background(), srv.URL, "deferred result")
}
