package docqa

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/aihub/docqa-go/internal/errors"
	"github.com/aihub/docqa-go/internal/logger"
)

// probeText 探活用的固定文本
const probeText = "ping"

// Selection 探测结果，明确记录本次选中的后端
type Selection struct {
	Embedder Embedder
	Backend  Backend
}

// Selector 嵌入后端选择器。按主后端优先、本地回退的顺序探活，
// 两个后端都不可用时返回ErrCodeEmbeddingUnavailable。
type Selector struct {
	primary  Embedder
	fallback Embedder
	log      *zap.Logger
}

// NewSelector 创建后端选择器
func NewSelector(primary, fallback Embedder) *Selector {
	return &Selector{
		primary:  primary,
		fallback: fallback,
		log:      logger.Named("embedding-selector"),
	}
}

// Probe 依次探活候选后端，返回第一个可用的后端
func (s *Selector) Probe(ctx context.Context) (*Selection, error) {
	candidates := []Embedder{s.primary, s.fallback}
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		vector, err := candidate.EmbedQuery(ctx, probeText)
		if err != nil || len(vector) == 0 {
			// 返回空向量与报错同样视为不可用
			s.log.Warn("嵌入后端探活失败",
				zap.String("backend", string(candidate.Backend())),
				zap.Error(err))
			continue
		}
		return &Selection{Embedder: candidate, Backend: candidate.Backend()}, nil
	}

	return nil, apperrors.NewExternalError(apperrors.ErrCodeEmbeddingUnavailable,
		"所有嵌入后端均不可用")
}

// ForBackend 返回指定后端对应的Embedder，用于查询阶段复用索引时的后端。
// 不做探活，调用失败由上层降级处理。
func (s *Selector) ForBackend(b Backend) Embedder {
	switch b {
	case BackendGemini:
		return s.primary
	case BackendLocal:
		return s.fallback
	default:
		return nil
	}
}
