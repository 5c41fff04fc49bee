package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/clawome/clawome/internal/action"
)

// ClaudeProvider implements Provider using Anthropic's Claude.
type ClaudeProvider struct {
	client *anthropic.Client
	model  string
}

func NewClaudeProvider(model string) (*ClaudeProvider, error) {
	apiKey := os.Getenv("CLAWOME_ANTHROPIC_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("CLAWOME_ANTHROPIC_KEY or ANTHROPIC_API_KEY environment variable required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}
	return &ClaudeProvider{client: &client, model: model}, nil
}

func (p *ClaudeProvider) GenerateActions(page Page, prompt string) ([]action.Action, error) {
	return p.complete(buildUserPrompt(page, prompt))
}

func (p *ClaudeProvider) ContinueActions(page Page, originalPrompt, completedActions string) ([]action.Action, error) {
	return p.complete(buildContinuePrompt(page, originalPrompt, completedActions))
}

func (p *ClaudeProvider) complete(userPrompt string) ([]action.Action, error) {
	resp, err := p.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("claude api error: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("empty response from claude")
	}

	actions, err := parseActionsJSON(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse claude response as JSON: %w\nresponse: %s", err, responseText)
	}
	return actions, nil
}
