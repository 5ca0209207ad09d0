package factory

import (
	"fmt"

	"resumegpt-be/pkg/llm"
	"resumegpt-be/pkg/llm/deepseek"
	"resumegpt-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, deepseekKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "deepseek":
		if deepseekKey == "" {
			return nil, fmt.Errorf("deepseek provider requires DEEPSEEK_API_KEY")
		}
		return deepseek.NewDeepSeekProvider(deepseekKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
