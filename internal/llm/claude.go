package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/qiniu/x/log"
)

const defaultClaudeModel = "claude-sonnet-4-5-20250929"

// ClaudeProvider completes prompts through the Anthropic Messages API.
type ClaudeProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewClaude(apiKey, model string, maxTokens int64) *ClaudeProvider {
	if model == "" {
		model = defaultClaudeModel
	}
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	return &ClaudeProvider{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude:" + p.model
}

func (p *ClaudeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	log.Infof("Requesting completion from %s (%d prompt bytes)", p.Name(), len(prompt))

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion failed: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", errors.New("anthropic returned an empty completion")
	}
	return out.String(), nil
}
