package tui

import "fmt"

// Pricing is USD per million tokens.
type Pricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

// ModelPricing covers the models offered by setup. Local models are free.
var ModelPricing = map[string]Pricing{
	"claude-opus-4-5-20251101":   {InputPer1M: 5.0, OutputPer1M: 25.0},
	"claude-sonnet-4-5-20250929": {InputPer1M: 3.0, OutputPer1M: 15.0},
	"claude-haiku-4-5-20251001":  {InputPer1M: 1.0, OutputPer1M: 5.0},

	"gpt-4o":      {InputPer1M: 2.5, OutputPer1M: 10.0},
	"gpt-4o-mini": {InputPer1M: 0.15, OutputPer1M: 0.60},
	"o3-mini":     {InputPer1M: 1.10, OutputPer1M: 4.40},

	// Unknown hosted models get a conservative estimate
	"default": {InputPer1M: 5.0, OutputPer1M: 15.0},
}

// localProviders run on the user's machine and cost nothing per call.
var localProviders = map[string]bool{"ollama": true}

// ExpectedOutputChars is the typical size of one discovery bundle answer.
const ExpectedOutputChars = 6000

// EstimateTokens estimates token count from character count.
// Uses the approximation that 1 token ≈ 4 characters.
func EstimateTokens(chars int) int {
	if chars <= 0 {
		return 0
	}
	return chars / 4
}

// EstimateCost calculates the estimated cost in USD of one call.
func EstimateCost(provider, model string, inputTokens, outputTokens int) float64 {
	if localProviders[provider] {
		return 0
	}
	pricing, ok := ModelPricing[model]
	if !ok {
		pricing = ModelPricing["default"]
	}
	return float64(inputTokens)*pricing.InputPer1M/1_000_000 +
		float64(outputTokens)*pricing.OutputPer1M/1_000_000
}

// FormatCost formats a cost in USD for display.
func FormatCost(cost float64) string {
	switch {
	case cost == 0:
		return "free"
	case cost < 0.001:
		return fmt.Sprintf("$%.4f", cost)
	case cost < 0.01:
		return fmt.Sprintf("$%.3f", cost)
	default:
		return fmt.Sprintf("$%.2f", cost)
	}
}

// FormatTokens formats a token count with a k suffix for thousands.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("%d", tokens)
	}
	if tokens < 10000 {
		return fmt.Sprintf("%.1fk", float64(tokens)/1000)
	}
	return fmt.Sprintf("%dk", tokens/1000)
}
