package predict

import (
	"fmt"
	"strings"
)

// NewPredictor creates a predictor based on configuration. It returns nil
// without error when no provider is configured.
func NewPredictor(config Config) (Predictor, error) {
	switch strings.ToLower(config.Provider) {
	case "endpoint", "tfserving":
		return NewEndpointPredictor(config)

	case "openai":
		return NewOpenAIPredictor(config)

	case "anthropic", "claude":
		return NewAnthropicPredictor(config)

	case "ollama":
		return NewOllamaPredictor(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown model provider: %s (supported: endpoint, openai, anthropic, ollama)", config.Provider)
	}
}
