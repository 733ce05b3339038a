package docqa

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/aihub/docqa-go/internal/logger"
	"github.com/aihub/docqa-go/internal/metrics"
)

// UploadArchiver 上传原始文件归档接口，为空实现时跳过归档
type UploadArchiver interface {
	Archive(ctx context.Context, userID uint, filename string, data []byte) error
}

// Service 文档问答服务，串联解析、分块、嵌入、索引、检索与回答合成
type Service struct {
	parser      *ParserManager
	chunker     *Chunker
	selector    *Selector
	indexer     *IndexWriter
	retriever   *Retriever
	synthesizer *Synthesizer
	archiver    UploadArchiver
	log         *zap.Logger
}

// NewService 创建文档问答服务
func NewService(
	parser *ParserManager,
	chunker *Chunker,
	selector *Selector,
	indexer *IndexWriter,
	retriever *Retriever,
	synthesizer *Synthesizer,
	archiver UploadArchiver,
) *Service {
	return &Service{
		parser:      parser,
		chunker:     chunker,
		selector:    selector,
		indexer:     indexer,
		retriever:   retriever,
		synthesizer: synthesizer,
		archiver:    archiver,
		log:         logger.Named("docqa-service"),
	}
}

// IngestResult 上传处理结果
type IngestResult struct {
	Filename string  `json:"filename"`
	Chunks   int     `json:"chunks"`
	Backend  Backend `json:"backend,omitempty"`
	Indexed  bool    `json:"indexed"`
}

// Ingest 处理一次文档上传：解析、分块、选择嵌入后端并重建用户索引。
// 解析后无有效内容时静默跳过索引，不返回错误，旧索引保持不变。
func (s *Service) Ingest(ctx context.Context, userID uint, filename string, reader io.Reader) (*IngestResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, userID, filename, data); err != nil {
			// 归档失败不阻断索引
			s.log.Warn("上传归档失败",
				zap.String("filename", filename),
				zap.Error(err))
		}
	}

	pages, err := s.parser.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, err
	}

	chunks := s.chunker.Split(pages, filename, strconv.FormatUint(uint64(userID), 10))
	if len(chunks) == 0 {
		s.log.Warn("文档无有效内容，跳过索引",
			zap.Uint("user_id", userID),
			zap.String("filename", filename))
		metrics.IngestEmptyTotal.Inc()
		return &IngestResult{Filename: filename, Chunks: 0, Indexed: false}, nil
	}

	selection, err := s.selector.Probe(ctx)
	if err != nil {
		return nil, err
	}
	if selection.Backend == BackendLocal {
		metrics.EmbeddingFallbackTotal.Inc()
	}

	if err := s.indexer.Write(ctx, userID, selection, chunks, filename); err != nil {
		return nil, err
	}

	metrics.IngestTotal.WithLabelValues(string(selection.Backend)).Inc()
	return &IngestResult{
		Filename: filename,
		Chunks:   len(chunks),
		Backend:  selection.Backend,
		Indexed:  true,
	}, nil
}

// Answer 回答用户问题。source为空时限定到最近一次上传的文件。
func (s *Service) Answer(ctx context.Context, userID uint, question, source string) (string, error) {
	results, err := s.retriever.Retrieve(ctx, userID, question, source)
	if err != nil {
		return "", err
	}

	metrics.QuestionsTotal.Inc()
	answer := s.synthesizer.Synthesize(ctx, question, results)
	switch answer {
	case AnswerNoContext:
		metrics.SentinelAnswersTotal.WithLabelValues("no_context").Inc()
	case AnswerLLMFailed:
		metrics.SentinelAnswersTotal.WithLabelValues("llm_failed").Inc()
	}
	return answer, nil
}
