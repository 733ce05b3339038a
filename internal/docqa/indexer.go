package docqa

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/aihub/docqa-go/internal/logger"
)

// IndexWriter 索引写入器，将分块写入分区索引并更新旁路记录
type IndexWriter struct {
	store   VectorStore
	records RecordStore
	log     *zap.Logger
}

// NewIndexWriter 创建索引写入器
func NewIndexWriter(store VectorStore, records RecordStore) *IndexWriter {
	return &IndexWriter{
		store:   store,
		records: records,
		log:     logger.Named("index-writer"),
	}
}

// Write 用本次上传的chunks重建用户分区索引。
// 写入顺序：先重建索引，成功后再更新后端记录与来源记录，
// 保证记录永远指向一个真实存在的索引。
func (w *IndexWriter) Write(ctx context.Context, userID uint, selection *Selection, chunks []Chunk, source string) error {
	partition := ResolvePartition(userID, selection.Backend)

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := selection.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return err
	}

	if err := w.store.Create(ctx, partition, chunks, vectors); err != nil {
		return err
	}

	if err := w.records.SetActiveBackend(ctx, userID, selection.Backend); err != nil {
		return err
	}
	if err := w.records.SetLastSource(ctx, partition, source); err != nil {
		return err
	}

	w.log.Info("索引写入完成",
		zap.String("user_id", strconv.FormatUint(uint64(userID), 10)),
		zap.String("backend", string(selection.Backend)),
		zap.String("source", source),
		zap.Int("chunks", len(chunks)))
	return nil
}
