package docqa

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/aihub/docqa-go/internal/logger"
)

// Retriever 检索器，按用户当前后端在对应分区内检索相关chunk
type Retriever struct {
	store    VectorStore
	records  RecordStore
	selector *Selector
	topK     int
	log      *zap.Logger
}

// NewRetriever 创建检索器
func NewRetriever(store VectorStore, records RecordStore, selector *Selector, topK int) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{
		store:    store,
		records:  records,
		selector: selector,
		topK:     topK,
		log:      logger.Named("retriever"),
	}
}

// Retrieve 检索与问题相关的chunk。source为空时默认限定到分区最近一次上传的文件。
// 检索阶段的失败一律降级为空结果，由上层返回"未找到"而不是报错。
func (r *Retriever) Retrieve(ctx context.Context, userID uint, question, source string) ([]ScoredChunk, error) {
	embedder, backend, err := r.resolveEmbedder(ctx, userID)
	if err != nil {
		return nil, err
	}

	partition := ResolvePartition(userID, backend)

	queryVector, err := embedder.EmbedQuery(ctx, question)
	if err != nil {
		r.log.Warn("查询向量化失败，降级为空结果",
			zap.String("backend", string(backend)),
			zap.Error(err))
		return nil, nil
	}

	filter := SearchFilter{UserID: strconv.FormatUint(uint64(userID), 10)}
	if source != "" {
		filter.Source = source
	} else {
		lastSource, err := r.records.LastSource(ctx, partition)
		if err != nil {
			r.log.Warn("读取来源记录失败", zap.Error(err))
		} else {
			filter.Source = lastSource
		}
	}

	results, err := r.store.Search(ctx, partition, queryVector, r.topK, filter)
	if err != nil {
		r.log.Warn("向量检索失败，降级为空结果",
			zap.String("partition", partition.Key()),
			zap.Error(err))
		return nil, nil
	}
	return results, nil
}

// resolveEmbedder 确定查询使用的后端。优先复用索引时记录的后端，
// 无记录或记录的后端未配置时重新探活。
func (r *Retriever) resolveEmbedder(ctx context.Context, userID uint) (Embedder, Backend, error) {
	recorded, err := r.records.ActiveBackend(ctx, userID)
	if err != nil {
		r.log.Warn("读取后端记录失败", zap.Error(err))
	}
	if recorded != "" && recorded.Known() {
		if embedder := r.selector.ForBackend(recorded); embedder != nil {
			return embedder, recorded, nil
		}
	}

	selection, err := r.selector.Probe(ctx)
	if err != nil {
		return nil, "", err
	}
	return selection.Embedder, selection.Backend, nil
}
