package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/statement-ledger/internal/logging"
)

// GeminiSuggester implements Suggester against the Google Gemini API.
type GeminiSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiSuggester creates a suggester for the given API key and model
// name.
func NewGeminiSuggester(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini suggester requires an API key")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiSuggester{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (s *GeminiSuggester) Close() error {
	return s.client.Close()
}

// Suggest asks the model for one category per transaction, restricted to
// the allowed list. Responses naming a category outside the list are
// filtered before returning.
func (s *GeminiSuggester) Suggest(ctx context.Context, items []SuggestionRequest, allowedCategories []string) ([]Suggestion, error) {
	if len(items) == 0 {
		return nil, nil
	}

	prompt, err := buildPrompt(items, allowedCategories)
	if err != nil {
		return nil, err
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	raw := responseText(resp)
	suggestions, err := parseSuggestions(raw)
	if err != nil {
		s.logger.WithError(err).Warn("Unparseable gemini response",
			logging.Field{Key: "response", Value: truncate(raw, 200)})
		return nil, err
	}

	kept := FilterAllowed(suggestions, allowedCategories)
	s.logger.Debug("Gemini suggestions received",
		logging.Field{Key: "requested", Value: len(items)},
		logging.Field{Key: "returned", Value: len(suggestions)},
		logging.Field{Key: "kept", Value: len(kept)})
	return kept, nil
}

func buildPrompt(items []SuggestionRequest, allowedCategories []string) (string, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding suggestion batch: %w", err)
	}

	var b strings.Builder
	b.WriteString("You categorize bank transactions.\n")
	b.WriteString("Allowed categories: ")
	b.WriteString(strings.Join(allowedCategories, ", "))
	b.WriteString("\nFor each transaction below, pick exactly one allowed category.\n")
	b.WriteString("Reply with only a JSON array of objects with keys ")
	b.WriteString(`"id", "suggestedCategory" and "reasoning".` + "\n")
	b.WriteString("Transactions:\n")
	b.Write(payload)
	return b.String(), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

// parseSuggestions tolerates markdown code fences around the JSON body,
// which the model adds despite instructions.
func parseSuggestions(raw string) ([]Suggestion, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	return suggestions, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
