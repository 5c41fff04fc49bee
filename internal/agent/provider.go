// Package agent implements an agentic loop with checkpoints: an LLM
// provider reads the rendered tree text and page URL from a
// pipeline.Extract call and proposes a batch of hid-addressed
// action.Actions; the loop keeps the node map and uses it to resolve
// those hids.
package agent

import (
	"fmt"

	"github.com/clawome/clawome/internal/action"
)

// Page is what a Provider needs to see of the current extraction: the
// rendered tree text plus the URL, so the model can ground its actions
// without being handed a raw node map to reason over (the node map exists
// only to resolve hids the model already chose).
type Page struct {
	URL      string
	Rendered string
}

// Provider defines the interface for LLM-driven action generation.
type Provider interface {
	GenerateActions(page Page, prompt string) ([]action.Action, error)
	ContinueActions(page Page, originalPrompt string, completedActions string) ([]action.Action, error)
}

// NewProvider creates a provider by name.
func NewProvider(name, model string) (Provider, error) {
	switch name {
	case "claude", "anthropic":
		return NewClaudeProvider(model)
	case "openai", "gpt":
		return NewOpenAIProvider(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: claude, openai)", name)
	}
}
