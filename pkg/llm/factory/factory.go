package factory

import (
	"fmt"

	"ai-chat-be/pkg/llm"
	"ai-chat-be/pkg/llm/groq"
	"ai-chat-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, groqAPIKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq":
		if groqAPIKey == "" {
			return nil, fmt.Errorf("groq provider requires GROQ_API_KEY")
		}
		return groq.NewGroqProvider(groqAPIKey, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
