package factory

import (
	"fmt"

	"github.com/grayfactory/superbowmvp-v4/pkg/llm"
	"github.com/grayfactory/superbowmvp-v4/pkg/llm/ollama"
	"github.com/grayfactory/superbowmvp-v4/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, openAIBaseURL, openAIKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if openAIBaseURL == "" {
			openAIBaseURL = "https://api.openai.com/v1" // Default
		}
		return openai.NewOpenAIProvider(openAIBaseURL, openAIKey, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
