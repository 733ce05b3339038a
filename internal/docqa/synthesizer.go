package docqa

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aihub/docqa-go/internal/llm"
	"github.com/aihub/docqa-go/internal/logger"
)

// 固定回答文案，上层与客户端依赖其精确内容做判断
const (
	// AnswerNoContext 检索不到相关内容时的回答
	AnswerNoContext = "No relevant information found in the uploaded documents."
	// AnswerLLMFailed 模型调用失败时的回答
	AnswerLLMFailed = "LLM request failed. Please try again later."
)

const answerPromptTemplate = "Using the following context, answer the user's question concisely and clearly.\n\nContext:\n%s\n\nQuestion: %s"

// Synthesizer 回答合成器，将检索结果拼接为上下文并调用LLM生成回答
type Synthesizer struct {
	client llm.Client
	log    *zap.Logger
}

// NewSynthesizer 创建回答合成器
func NewSynthesizer(client llm.Client) *Synthesizer {
	return &Synthesizer{
		client: client,
		log:    logger.Named("synthesizer"),
	}
}

// Synthesize 基于检索到的chunk生成回答。
// 无检索结果时直接返回固定文案，不调用LLM；
// LLM调用失败时返回失败文案，不向上抛错。
func (s *Synthesizer) Synthesize(ctx context.Context, question string, results []ScoredChunk) string {
	if len(results) == 0 {
		return AnswerNoContext
	}

	texts := make([]string, len(results))
	for i, result := range results {
		texts[i] = result.Chunk.Text
	}
	contextText := strings.Join(texts, "\n\n")
	if strings.TrimSpace(contextText) == "" {
		return AnswerNoContext
	}

	prompt := fmt.Sprintf(answerPromptTemplate, contextText, question)
	answer, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("LLM调用失败",
			zap.String("model", s.client.Model()),
			zap.Error(err))
		return AnswerLLMFailed
	}
	return answer
}
