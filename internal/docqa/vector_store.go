package docqa

import (
	"context"
	"math"
)

// SearchFilter 检索过滤条件。UserID必填，Source为空时不按来源过滤。
type SearchFilter struct {
	UserID string
	Source string
}

// Matches 判断chunk是否满足过滤条件
func (f SearchFilter) Matches(c Chunk) bool {
	if c.UserID != f.UserID {
		return false
	}
	if f.Source != "" && c.Source != f.Source {
		return false
	}
	return true
}

// ScoredChunk 带相似度分数的检索结果
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// VectorStore 分区化向量存储。Create以覆盖语义重建分区，
// Search在单个分区内按过滤条件检索。
type VectorStore interface {
	// Create 销毁并重建分区索引，写入chunks及其向量
	Create(ctx context.Context, p Partition, chunks []Chunk, vectors [][]float32) error
	// Destroy 删除分区索引，分区不存在时不报错
	Destroy(ctx context.Context, p Partition) error
	// Search 在分区内检索最相似的topK个chunk，分区不存在时返回空结果
	Search(ctx context.Context, p Partition, query []float32, topK int, filter SearchFilter) ([]ScoredChunk, error)
	// Ready 判断分区索引是否存在
	Ready(ctx context.Context, p Partition) (bool, error)
}

// cosineSimilarity 计算两个向量的余弦相似度，维度不一致时返回0
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
