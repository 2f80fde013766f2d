package llm

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/dhabedank/lumina/internal/core"
)

// parseJSONResponse extracts and validates a bundle from LLM output.
func parseJSONResponse(output string) (*core.DiscoveryResults, error) {
	jsonStr := extractJSON(output)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var response core.DiscoveryResults
	if err := json.Unmarshal([]byte(jsonStr), &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := response.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &response, nil
}

// extractJSON extracts a JSON object from model output, handling CLI
// wrappers and markdown fences.
func extractJSON(output string) string {
	output = strings.TrimSpace(output)

	// claude --output-format json wraps the answer
	if strings.HasPrefix(output, "{\"type\":") {
		var wrapper struct {
			Type    string `json:"type"`
			Result  string `json:"result"`
			IsError bool   `json:"is_error"`
		}
		if err := json.Unmarshal([]byte(output), &wrapper); err == nil {
			if wrapper.IsError {
				return ""
			}
			output = strings.TrimSpace(wrapper.Result)
		}
	}

	// Remove markdown fences
	if strings.HasPrefix(output, "```") {
		output = strings.TrimPrefix(output, "```json")
		output = strings.TrimPrefix(output, "```")
		if idx := strings.LastIndex(output, "```"); idx != -1 {
			output = output[:idx]
		}
		output = strings.TrimSpace(output)
	}

	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}

	return output[start : end+1]
}
