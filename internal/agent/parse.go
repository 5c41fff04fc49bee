package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clawome/clawome/internal/action"
)

// parseActionsJSON extracts and parses a JSON array from a response that
// may contain surrounding prose.
func parseActionsJSON(response string) ([]action.Action, error) {
	var actions []action.Action
	if err := json.Unmarshal([]byte(response), &actions); err == nil {
		return actions, nil
	}

	start := strings.Index(response, "[")
	if start == -1 {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	depth := 0
	end := -1
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				end = i + 1
			}
		}
		if end != -1 {
			break
		}
	}
	if end == -1 {
		return nil, fmt.Errorf("no matching closing bracket found")
	}

	jsonStr := response[start:end]
	if err := json.Unmarshal([]byte(jsonStr), &actions); err != nil {
		return nil, fmt.Errorf("failed to parse extracted JSON: %w", err)
	}
	return actions, nil
}
