// File: services/intelligence/geminiClient.go
package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const suggestPrompt = `You are an expert at extracting information from identity documents.

Given this OCR text from a passport/ID/license, extract ONLY the expiry date.

OCR Text:
%s

Instructions:
1. Find the expiry date (look for: "expiry", "expires", "valid until", "date of expiry", etc.)
2. Return ONLY the date in YYYY-MM-DD format
3. If you find multiple dates, return the EXPIRY date (not birth date or issue date)
4. If no expiry date found, return "NONE"

Return ONLY the date in YYYY-MM-DD format or "NONE". No explanation.`

// GeminiClient implements ExpiryDateSuggester against the Gemini API.
type GeminiClient struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiClient builds a Gemini-backed suggester. The timeout bounds every
// SuggestExpiryDate call so extraction can never stall on the network.
func NewGeminiClient(apiKey string, timeout time.Duration) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	model.SetTemperature(0.1)
	model.SetMaxOutputTokens(50)
	return &GeminiClient{model: model, timeout: timeout}, nil
}

// SuggestExpiryDate sends the OCR text to Gemini and parses the reply as a
// calendar date. Returns ErrNoDate for the "NONE" sentinel and an error for
// timeouts or unparsable replies.
func (g *GeminiClient) SuggestExpiryDate(ctx context.Context, text string) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(suggestPrompt, text)))
	if err != nil {
		return time.Time{}, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return time.Time{}, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	reply := strings.Trim(strings.TrimSpace(sb.String()), "\"'`")
	if reply == "" || strings.EqualFold(reply, "NONE") {
		return time.Time{}, ErrNoDate
	}

	parsed, err := time.Parse("2006-01-02", reply)
	if err != nil {
		return time.Time{}, fmt.Errorf("gemini reply %q is not a date: %w", reply, err)
	}
	return parsed, nil
}
