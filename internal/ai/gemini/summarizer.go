// Package gemini implements the PR summarizer against the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const systemInstruction = "You are a senior software engineer reviewing pull requests. " +
	"Analyze the code changes and provide clear, concise summaries."

const fallbackSummary = "Unable to generate an automated summary for this pull request."

// GenerativeModel is the slice of the genai model API the summarizer uses.
type GenerativeModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Summarizer produces natural-language summaries of PR diffs.
type Summarizer struct {
	client *genai.Client
	model  GenerativeModel
	log    *zap.SugaredLogger
}

// NewSummarizer creates a Gemini-backed summarizer.
func NewSummarizer(ctx context.Context, log *zap.SugaredLogger, apiKey, modelName string) (*Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(1500)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &Summarizer{
		client: client,
		model:  model,
		log:    log.Named("gemini"),
	}, nil
}

// NewSummarizerWithModel creates a summarizer around an existing model, for tests.
func NewSummarizerWithModel(log *zap.SugaredLogger, model GenerativeModel) *Summarizer {
	return &Summarizer{
		model: model,
		log:   log.Named("gemini"),
	}
}

// Close releases the underlying client.
func (s *Summarizer) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Summarize returns a summary of the PR. It never fails: any error or empty
// model response degrades to a fixed fallback string so the pipeline can
// still notify the user with partial information.
func (s *Summarizer) Summarize(ctx context.Context, title, description, diff string) string {
	prompt := buildPrompt(title, description, diff)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		s.log.Warnw("summary generation failed", "error", err)
		return fallbackSummary
	}

	summary := responseText(resp)
	if summary == "" {
		s.log.Warnw("summary generation returned no text")
		return fallbackSummary
	}
	return summary
}

func buildPrompt(title, description, diff string) string {
	var b strings.Builder
	b.WriteString("Please analyze this pull request and provide a structured summary.\n\n")
	fmt.Fprintf(&b, "**PR Title:** %s\n\n", title)
	fmt.Fprintf(&b, "**PR Description:** %s\n\n", description)
	fmt.Fprintf(&b, "**Code Changes (Git Diff):**\n```diff\n%s\n```\n\n", diff)
	b.WriteString("Provide a 1-2 sentence overall summary, a per-file breakdown of what changed, " +
		"and any important technical notes or potential impacts. " +
		"Focus on business logic and functional changes rather than formatting.")
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				parts = append(parts, string(text))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
