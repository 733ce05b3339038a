package docqa

import (
	"context"
)

// Backend 嵌入后端标识，同时作为分区键的一部分，决定向量维度
type Backend string

const (
	// BackendGemini 主后端（远程Gemini嵌入API）
	BackendGemini Backend = "gemini-embedding-001"
	// BackendLocal 本地回退后端（OpenAI兼容的sentence-transformers服务）
	BackendLocal Backend = "all-MiniLM-L6-v2"
)

var backendDimensions = map[Backend]int{
	BackendGemini: 768,
	BackendLocal:  384,
}

// Dimensions 返回后端的固定向量维度，未知后端返回0
func (b Backend) Dimensions() int {
	return backendDimensions[b]
}

// Known 判断是否为已知后端标识
func (b Backend) Known() bool {
	_, ok := backendDimensions[b]
	return ok
}

// Embedder 定义文本向量化接口。索引与查询必须使用同一后端，
// 否则向量维度不一致，检索结果无意义。
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Backend() Backend
}
