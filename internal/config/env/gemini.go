package env

import (
	"errors"
	"os"

	"github.com/ozodbekov/cashbot/internal/config"
)

const (
	geminiKeyEnvName   = "GEMINI_API_KEY"
	geminiModelEnvName = "GEMINI_MODEL"

	defaultGeminiModel = "gemini-1.5-flash"
)

type geminiConfig struct {
	apiKey string
	model  string
}

func NewGeminiConfig() (config.GeminiConfig, error) {
	apiKey := os.Getenv(geminiKeyEnvName)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY not found")
	}

	model := os.Getenv(geminiModelEnvName)
	if model == "" {
		model = defaultGeminiModel
	}

	return &geminiConfig{
		apiKey: apiKey,
		model:  model,
	}, nil
}

func (cfg *geminiConfig) APIKey() string {
	return cfg.apiKey
}

func (cfg *geminiConfig) Model() string {
	return cfg.model
}
