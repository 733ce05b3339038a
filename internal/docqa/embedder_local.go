package docqa

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// LocalEmbedder 本地回退嵌入后端，通过OpenAI兼容接口调用sentence-transformers服务
type LocalEmbedder struct {
	client *openai.Client
	model  string
}

// NewLocalEmbedder 创建本地嵌入向量生成器
func NewLocalEmbedder(endpoint, model string) *LocalEmbedder {
	if model == "" {
		model = string(BackendLocal)
	}
	// 本地服务不校验key，占位即可
	config := openai.DefaultConfig("local")
	if endpoint != "" {
		config.BaseURL = strings.TrimRight(endpoint, "/")
	}
	return &LocalEmbedder{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (e *LocalEmbedder) Backend() Backend {
	return BackendLocal
}

func (e *LocalEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts to embed")
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.New("embedding response incomplete")
	}

	vectors := make([][]float32, len(texts))
	for i, data := range resp.Data {
		vectors[i] = data.Embedding
	}
	return vectors, nil
}

func (e *LocalEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
