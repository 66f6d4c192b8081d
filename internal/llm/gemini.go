package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/qiniu/x/log"
	genai "google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider completes prompts through the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini:" + p.model
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	log.Infof("Requesting completion from %s (%d prompt bytes)", p.Name(), len(prompt))

	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned an empty completion")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", errors.New("gemini returned an empty completion")
	}
	return text, nil
}
