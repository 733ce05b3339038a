package llm

import "context"

// Client 大模型文本生成客户端
type Client interface {
	// Complete 根据提示词生成回答
	Complete(ctx context.Context, prompt string) (string, error)
	// Model 返回使用的模型名
	Model() string
}
