package llm

import (
	"fmt"

	"github.com/aihub/docqa-go/internal/config"
)

// NewClient 根据配置创建LLM客户端
func NewClient(cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiClient(cfg.GeminiAPIKey, cfg.Model), nil
	case "openai":
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
