package llm

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient Gemini文本生成客户端
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient 创建Gemini客户端
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClient{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
	}
}

func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("gemini api key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}},
	}, nil)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}
