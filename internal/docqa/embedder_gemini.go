package docqa

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// GeminiEmbedder 使用Gemini Embedding API
type GeminiEmbedder struct {
	apiKey string
	model  string
}

// NewGeminiEmbedder 创建Gemini嵌入向量生成器
func NewGeminiEmbedder(apiKey, model string) *GeminiEmbedder {
	if model == "" {
		model = string(BackendGemini)
	}
	return &GeminiEmbedder{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
	}
}

func (e *GeminiEmbedder) Backend() Backend {
	return BackendGemini
}

func (e *GeminiEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.embed(ctx, texts, "RETRIEVAL_DOCUMENT")
}

func (e *GeminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embed(ctx, []string{text}, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *GeminiEmbedder) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if e.apiKey == "" {
		return nil, errors.New("gemini api key not configured")
	}
	if len(texts) == 0 {
		return nil, errors.New("no texts to embed")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  e.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	// 固定输出维度，保证分区内向量空间一致
	dim := int32(BackendGemini.Dimensions())
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{Parts: []*genai.Part{{Text: text}}})
	}

	resp, err := client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: &dim,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, errors.New("embedding response incomplete")
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, errors.New("embedding response empty")
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}
