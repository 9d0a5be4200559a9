package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"slack-gpt-bot/internal/cache"
	"slack-gpt-bot/internal/entities"
	"slack-gpt-bot/internal/mapper"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type storeMock struct{ mock.Mock }

var _ cache.Store = (*storeMock)(nil)

func (m *storeMock) OnStart(_ context.Context) error { return nil }
func (m *storeMock) OnStop(_ context.Context) error  { return nil }

func (m *storeMock) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *storeMock) Write(ctx context.Context, key string, rec entities.PRRecord, ttl time.Duration) error {
	args := m.Called(ctx, key, rec, ttl)
	return args.Error(0)
}

func (m *storeMock) UpdateField(ctx context.Context, key, field, value string) (entities.UpdateOutcome, error) {
	args := m.Called(ctx, key, field, value)
	return args.Get(0).(entities.UpdateOutcome), args.Error(1)
}

func (m *storeMock) Read(ctx context.Context, key string) (entities.PRRecord, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(entities.PRRecord), args.Bool(1), args.Error(2)
}

func (m *storeMock) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type fetcherMock struct{ mock.Mock }

var _ Fetcher = (*fetcherMock)(nil)

func (m *fetcherMock) FetchPullRequest(ctx context.Context, id entities.PRIdentity) (entities.PRMetadata, string, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.PRMetadata), args.String(1), args.Error(2)
}

type summarizerMock struct{ mock.Mock }

var _ Summarizer = (*summarizerMock)(nil)

func (m *summarizerMock) Summarize(ctx context.Context, title, description, diff string) string {
	args := m.Called(ctx, title, description, diff)
	return args.String(0)
}

type notifierMock struct{ mock.Mock }

var _ Notifier = (*notifierMock)(nil)

func (m *notifierMock) PostToChannel(ctx context.Context, channel, text string) entities.SlackMessageResult {
	args := m.Called(ctx, channel, text)
	return args.Get(0).(entities.SlackMessageResult)
}

func (m *notifierMock) PostToResponseURL(ctx context.Context, responseURL, text string) {
	m.Called(ctx, responseURL, text)
}

const (
	testPRURL       = "https://github.com/acme/widgets/pull/42"
	testResponseURL = "https://hooks.slack.test/response/T1"
)

func testOptions() Options {
	return Options{
		Channel:         "C123",
		Owner:           "acme",
		CacheTTL:        time.Hour,
		PipelineTimeout: 2 * time.Minute,
	}
}

func newTestUsecase() (*Usecase, *storeMock, *fetcherMock, *summarizerMock, *notifierMock) {
	store := &storeMock{}
	fetcher := &fetcherMock{}
	summarizer := &summarizerMock{}
	notifier := &notifierMock{}
	uc := New(zap.NewNop().Sugar(), store, fetcher, summarizer, notifier, testOptions())
	return uc, store, fetcher, summarizer, notifier
}

func TestProcessPRSummaryCacheHitSkipsRemoteCalls(t *testing.T) {
	uc, store, fetcher, summarizer, notifier := newTestUsecase()

	rec := entities.PRRecord{
		Author:       "octocat",
		FilesChanged: 3,
		Additions:    10,
		Deletions:    2,
		HTMLURL:      testPRURL,
		State:        "open",
		Summary:      "Adds widgets.",
	}
	store.On("Read", mock.Anything, testPRURL).Return(rec, true, nil)
	notifier.On("PostToResponseURL", mock.Anything, testResponseURL, mapper.ToSlackText(rec))

	uc.ProcessPRSummary(context.Background(), testPRURL, testResponseURL)

	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
	fetcher.AssertNotCalled(t, "FetchPullRequest", mock.Anything, mock.Anything)
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessPRSummaryCacheMissFetchesSummarizesAndWrites(t *testing.T) {
	uc, store, fetcher, summarizer, notifier := newTestUsecase()

	meta := entities.PRMetadata{
		Title:        "Add widgets",
		Description:  "Widget support",
		Author:       "octocat",
		State:        "open",
		HTMLURL:      testPRURL,
		FilesChanged: 3,
		Additions:    10,
		Deletions:    2,
	}
	wantRec := mapper.ToRecord(meta, "Adds widget support.")

	store.On("Read", mock.Anything, testPRURL).Return(entities.PRRecord{}, false, nil)
	fetcher.On("FetchPullRequest", mock.Anything, entities.PRIdentity{Owner: "acme", Repo: "widgets", Number: 42}).
		Return(meta, "diff --git a/widget.go b/widget.go", nil).Once()
	summarizer.On("Summarize", mock.Anything, meta.Title, meta.Description, "diff --git a/widget.go b/widget.go").
		Return("Adds widget support.").Once()
	store.On("Write", mock.Anything, testPRURL, wantRec, time.Hour).Return(nil).Once()
	notifier.On("PostToResponseURL", mock.Anything, testResponseURL, mapper.ToSlackText(wantRec)).Once()

	uc.ProcessPRSummary(context.Background(), testPRURL, testResponseURL)

	store.AssertExpectations(t)
	fetcher.AssertExpectations(t)
	summarizer.AssertExpectations(t)
	notifier.AssertExpectations(t)
	fetcher.AssertNumberOfCalls(t, "FetchPullRequest", 1)
	summarizer.AssertNumberOfCalls(t, "Summarize", 1)
	store.AssertNumberOfCalls(t, "Write", 1)
	notifier.AssertNumberOfCalls(t, "PostToResponseURL", 1)
}

func TestProcessPRSummaryMissingFieldDeletesCacheEntry(t *testing.T) {
	uc, store, fetcher, _, notifier := newTestUsecase()

	store.On("Read", mock.Anything, testPRURL).Return(entities.PRRecord{}, false, nil)
	fetcher.On("FetchPullRequest", mock.Anything, mock.Anything).
		Return(entities.PRMetadata{}, "", &entities.MissingFieldError{Field: "author"})
	notifier.On("PostToResponseURL", mock.Anything, testResponseURL, "❌ Missing data in response: author").Once()
	store.On("Delete", mock.Anything, testPRURL).Return(false, nil).Once()

	uc.ProcessPRSummary(context.Background(), testPRURL, testResponseURL)

	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProcessPRSummaryStatusErrorDeletesCacheEntry(t *testing.T) {
	uc, store, fetcher, _, notifier := newTestUsecase()

	store.On("Read", mock.Anything, testPRURL).Return(entities.PRRecord{}, false, nil)
	fetcher.On("FetchPullRequest", mock.Anything, mock.Anything).
		Return(entities.PRMetadata{}, "", &entities.APIStatusError{StatusCode: 404})
	notifier.On("PostToResponseURL", mock.Anything, testResponseURL, "❌ GitHub API error: 404").Once()
	store.On("Delete", mock.Anything, testPRURL).Return(false, nil).Once()

	uc.ProcessPRSummary(context.Background(), testPRURL, testResponseURL)

	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProcessPRSummaryTimeoutLeavesCacheUntouched(t *testing.T) {
	uc, store, fetcher, _, notifier := newTestUsecase()

	store.On("Read", mock.Anything, testPRURL).Return(entities.PRRecord{}, false, nil)
	fetcher.On("FetchPullRequest", mock.Anything, mock.Anything).
		Return(entities.PRMetadata{}, "", entities.ErrFetchTimeout)
	notifier.On("PostToResponseURL", mock.Anything, testResponseURL,
		"❌ Request timed out. The PR might be too large.").Once()

	uc.ProcessPRSummary(context.Background(), testPRURL, testResponseURL)

	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProcessPRSummaryUnexpectedErrorDeletesCacheEntry(t *testing.T) {
	uc, store, fetcher, _, notifier := newTestUsecase()

	store.On("Read", mock.Anything, testPRURL).Return(entities.PRRecord{}, false, nil)
	fetcher.On("FetchPullRequest", mock.Anything, mock.Anything).
		Return(entities.PRMetadata{}, "", errors.New("boom"))
	notifier.On("PostToResponseURL", mock.Anything, testResponseURL, "❌ Error analyzing PR: boom").Once()
	store.On("Delete", mock.Anything, testPRURL).Return(true, nil).Once()

	uc.ProcessPRSummary(context.Background(), testPRURL, testResponseURL)

	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProcessPRSummaryInvalidURLReportsError(t *testing.T) {
	uc, store, fetcher, _, notifier := newTestUsecase()

	badURL := "https://github.com/acme/widgets/issues/42"
	store.On("Read", mock.Anything, badURL).Return(entities.PRRecord{}, false, nil)
	notifier.On("PostToResponseURL", mock.Anything, testResponseURL, mock.MatchedBy(func(text string) bool {
		return len(text) > 0
	})).Once()
	store.On("Delete", mock.Anything, badURL).Return(false, nil).Once()

	uc.ProcessPRSummary(context.Background(), badURL, testResponseURL)

	fetcher.AssertNotCalled(t, "FetchPullRequest", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}
