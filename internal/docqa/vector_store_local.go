package docqa

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/aihub/docqa-go/internal/errors"
	"github.com/aihub/docqa-go/internal/logger"
)

const indexFileName = "chunks.json"

// storedChunk 本地索引的持久化结构
type storedChunk struct {
	Index  int       `json:"index"`
	Text   string    `json:"text"`
	Source string    `json:"source"`
	UserID string    `json:"user_id"`
	Vector []float32 `json:"vector"`
}

// LocalVectorStore 基于本地文件的向量存储，向量与元数据持久化为JSON，
// 检索时全量加载后暴力计算余弦相似度。适合单机小规模部署。
type LocalVectorStore struct {
	root string
	mu   sync.RWMutex
	log  *zap.Logger
}

// NewLocalVectorStore 创建本地向量存储
func NewLocalVectorStore(root string) *LocalVectorStore {
	return &LocalVectorStore{
		root: root,
		log:  logger.Named("local-vector-store"),
	}
}

// Create 销毁并重建分区索引。先写入临时目录，再原子替换分区目录，
// 失败时旧索引保持可用。
func (s *LocalVectorStore) Create(ctx context.Context, p Partition, chunks []Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return apperrors.NewSystemError(apperrors.ErrCodeIndexInconsistent, "chunk数量与向量数量不一致")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]storedChunk, len(chunks))
	for i, chunk := range chunks {
		stored[i] = storedChunk{
			Index:  chunk.Index,
			Text:   chunk.Text,
			Source: chunk.Source,
			UserID: chunk.UserID,
			Vector: vectors[i],
		}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "序列化索引失败").WithCause(err)
	}

	dir := p.Dir(s.root)
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "创建索引目录失败").WithCause(err)
	}

	staging, err := os.MkdirTemp(parent, fmt.Sprintf(".%s-*", string(p.Backend)))
	if err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "创建临时索引目录失败").WithCause(err)
	}
	defer os.RemoveAll(staging)

	if err := os.WriteFile(filepath.Join(staging, indexFileName), data, 0o644); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "写入索引文件失败").WithCause(err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "删除旧索引失败").WithCause(err)
	}
	if err := os.Rename(staging, dir); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "替换索引目录失败").WithCause(err)
	}

	s.log.Info("分区索引已重建",
		zap.String("partition", p.Key()),
		zap.Int("chunks", len(chunks)))
	return nil
}

// Destroy 删除分区索引
func (s *LocalVectorStore) Destroy(ctx context.Context, p Partition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(p.Dir(s.root)); err != nil {
		return apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "删除分区索引失败").WithCause(err)
	}
	return nil
}

// Ready 判断分区索引文件是否存在
func (s *LocalVectorStore) Ready(ctx context.Context, p Partition) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(filepath.Join(p.Dir(s.root), indexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "检查索引状态失败").WithCause(err)
	}
	return true, nil
}

// Search 在分区内按余弦相似度检索topK个chunk
func (s *LocalVectorStore) Search(ctx context.Context, p Partition, query []float32, topK int, filter SearchFilter) ([]ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(p.Dir(s.root), indexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "读取索引文件失败").WithCause(err)
	}

	var stored []storedChunk
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, apperrors.NewSystemError(apperrors.ErrCodeIndexInconsistent, "索引文件损坏").WithCause(err)
	}

	results := make([]ScoredChunk, 0, len(stored))
	for _, sc := range stored {
		chunk := Chunk{
			Index:  sc.Index,
			Text:   sc.Text,
			Source: sc.Source,
			UserID: sc.UserID,
		}
		if !filter.Matches(chunk) {
			continue
		}
		results = append(results, ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(query, sc.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
