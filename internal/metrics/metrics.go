package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 业务指标
var (
	// IngestTotal 文档索引次数，按嵌入后端区分
	IngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docqa_ingest_total",
		Help: "Total number of document ingestions by embedding backend",
	}, []string{"backend"})

	// IngestEmptyTotal 解析后无有效内容的上传次数
	IngestEmptyTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docqa_ingest_empty_total",
		Help: "Total number of uploads that produced no indexable content",
	})

	// QuestionsTotal 问答请求次数
	QuestionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docqa_questions_total",
		Help: "Total number of answered questions",
	})

	// EmbeddingFallbackTotal 主嵌入后端不可用、回退到本地后端的次数
	EmbeddingFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docqa_embedding_fallback_total",
		Help: "Total number of times the primary embedding backend was unavailable",
	})

	// SentinelAnswersTotal 固定文案回答次数，按原因区分
	SentinelAnswersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docqa_sentinel_answers_total",
		Help: "Total number of fixed fallback answers by reason",
	}, []string{"reason"})
)

// Handler 返回Prometheus指标HTTP处理器
func Handler() http.Handler {
	return promhttp.Handler()
}
