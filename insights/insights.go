// Package insights turns prediction results into a short written analysis
// using a generative model.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"salestrend/prediction"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("model returned no content")

// Generator writes an analysis of a set of predictions.
type Generator interface {
	Summarize(ctx context.Context, predictions []prediction.Result) (string, error)
}

// GeminiGenerator is a Generator backed by the Gemini API.
type GeminiGenerator struct {
	apiKey string
	model  string
}

// NewGeminiGenerator returns a generator, or nil when apiKey is empty.
func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if apiKey == "" {
		return nil
	}
	return &GeminiGenerator{apiKey: apiKey, model: model}
}

// Summarize asks the model for a concise analysis of the predictions.
func (g *GeminiGenerator) Summarize(ctx context.Context, predictions []prediction.Result) (string, error) {
	prompt, err := BuildPrompt(predictions)
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(b.String()), nil
}

// BuildPrompt renders the instruction sent to the model.
func BuildPrompt(predictions []prediction.Result) (string, error) {
	data, err := json.Marshal(predictions)
	if err != nil {
		return "", fmt.Errorf("failed to serialize predictions: %w", err)
	}

	return fmt.Sprintf(
		`You are a helpful AI assistant for a retail business. Below are per-product sales forecasts produced by a trend model (linear regression over smoothed daily sales). For each product you get the trend, the predicted daily, weekly and monthly sales, a confidence score between 0 and 1 and a rule-based recommendation.

Write a concise analysis for the store manager: highlight the products that need action first, mention any product whose confidence is below 0.4 as unreliable, and do not invent numbers that are not in the data.

Data: %s`,
		string(data),
	), nil
}
