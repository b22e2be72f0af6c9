package ai

import (
	"fmt"
	"os"

	"journal-go/internal/config"
)

// NewFromConfig creates an Assistant based on the analysis config type.
func NewFromConfig(cfg config.AnalysisConfig) (Assistant, error) {
	switch cfg.Type {
	case "anthropic", "":
		if err := config.CheckEnv(config.AnthropicAPIKeyEnv); err != nil {
			return nil, err
		}
		modelName := cfg.Model
		if modelName == "" {
			modelName = config.DefaultModel
		}
		return NewAnthropicClient(os.Getenv(config.AnthropicAPIKeyEnv), modelName, cfg.MaxTokens), nil
	case "test":
		return NewTestAnalyzer(), nil
	default:
		return nil, fmt.Errorf("unknown analysis type: %s", cfg.Type)
	}
}
