package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/clawome/clawome/internal/action"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(model string) (*OpenAIProvider, error) {
	apiKey := os.Getenv("CLAWOME_OPENAI_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("CLAWOME_OPENAI_KEY or OPENAI_API_KEY environment variable required")
	}

	client := openai.NewClient(apiKey)
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIProvider{client: client, model: model}, nil
}

func (p *OpenAIProvider) GenerateActions(page Page, prompt string) ([]action.Action, error) {
	return p.complete(buildUserPrompt(page, prompt))
}

func (p *OpenAIProvider) ContinueActions(page Page, originalPrompt, completedActions string) ([]action.Action, error) {
	return p.complete(buildContinuePrompt(page, originalPrompt, completedActions))
}

func (p *OpenAIProvider) complete(userPrompt string) ([]action.Action, error) {
	resp, err := p.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens: 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from openai")
	}

	responseText := resp.Choices[0].Message.Content
	actions, err := parseActionsJSON(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse openai response as JSON: %w\nresponse: %s", err, responseText)
	}
	return actions, nil
}
