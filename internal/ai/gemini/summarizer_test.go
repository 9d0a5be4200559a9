package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type modelMock struct{ mock.Mock }

var _ GenerativeModel = (*modelMock)(nil)

func (m *modelMock) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, parts)
	var resp *genai.GenerateContentResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*genai.GenerateContentResponse)
	}
	return resp, args.Error(1)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}}},
		},
	}
}

func TestSummarizeReturnsModelText(t *testing.T) {
	model := &modelMock{}
	model.On("GenerateContent", mock.Anything, mock.Anything).
		Return(textResponse("Adds widget support."), nil).Once()

	s := NewSummarizerWithModel(zap.NewNop().Sugar(), model)
	got := s.Summarize(context.Background(), "Add widgets", "Widget support", "diff --git")

	require.Equal(t, "Adds widget support.", got)
	model.AssertExpectations(t)
}

func TestSummarizeDegradesToFallbackOnError(t *testing.T) {
	model := &modelMock{}
	model.On("GenerateContent", mock.Anything, mock.Anything).
		Return(nil, errors.New("quota exceeded")).Once()

	s := NewSummarizerWithModel(zap.NewNop().Sugar(), model)
	got := s.Summarize(context.Background(), "Add widgets", "Widget support", "diff --git")

	require.Equal(t, fallbackSummary, got)
}

func TestSummarizeDegradesToFallbackOnEmptyResponse(t *testing.T) {
	model := &modelMock{}
	model.On("GenerateContent", mock.Anything, mock.Anything).
		Return(&genai.GenerateContentResponse{}, nil).Once()

	s := NewSummarizerWithModel(zap.NewNop().Sugar(), model)
	got := s.Summarize(context.Background(), "Add widgets", "Widget support", "diff --git")

	require.Equal(t, fallbackSummary, got)
}

func TestBuildPromptIncludesAllSections(t *testing.T) {
	prompt := buildPrompt("Add widgets", "Widget support", "diff --git a/widget.go")

	require.Contains(t, prompt, "**PR Title:** Add widgets")
	require.Contains(t, prompt, "**PR Description:** Widget support")
	require.Contains(t, prompt, "diff --git a/widget.go")
	require.True(t, strings.Contains(prompt, "```diff"))
}

func TestNewSummarizerRejectsEmptyAPIKey(t *testing.T) {
	_, err := NewSummarizer(context.Background(), zap.NewNop().Sugar(), "", "gemini-2.0-flash")
	require.Error(t, err)
}
