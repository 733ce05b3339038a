package docqa

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service  *Service
	primary  *fakeEmbedder
	fallback *fakeEmbedder
	llm      *fakeLLM
	store    *LocalVectorStore
	records  *FileRecordStore
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	root := t.TempDir()
	store := NewLocalVectorStore(root)
	records := NewFileRecordStore(root)
	primary := &fakeEmbedder{backend: BackendGemini}
	fallback := &fakeEmbedder{backend: BackendLocal}
	selector := NewSelector(primary, fallback)
	llmClient := &fakeLLM{answer: "synthesized answer"}

	service := NewService(
		NewParserManager(),
		NewChunker(800, 100),
		selector,
		NewIndexWriter(store, records),
		NewRetriever(store, records, selector, 4),
		NewSynthesizer(llmClient),
		nil,
	)

	return &serviceFixture{
		service:  service,
		primary:  primary,
		fallback: fallback,
		llm:      llmClient,
		store:    store,
		records:  records,
	}
}

func TestService_IngestAndAnswer(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	content := "The vacation policy allows 20 days per year. Security rules require password rotation every 90 days."
	result, err := f.service.Ingest(ctx, 1, "policy.txt", strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, result.Indexed)
	assert.Equal(t, BackendGemini, result.Backend)
	assert.True(t, result.Chunks > 0)

	answer, err := f.service.Answer(ctx, 1, "how many vacation days?", "")
	require.NoError(t, err)
	assert.Equal(t, "synthesized answer", answer)
	assert.Contains(t, f.llm.lastPrompt, "vacation policy")
}

func TestService_IngestEmptyDocument(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	result, err := f.service.Ingest(ctx, 1, "empty.txt", strings.NewReader("   \n\t  "))
	require.NoError(t, err)
	assert.False(t, result.Indexed)
	assert.Equal(t, 0, result.Chunks)

	// 空文档不创建索引
	ready, err := f.store.Ready(ctx, ResolvePartition(1, BackendGemini))
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestService_IngestEmptyKeepsExistingIndex(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Ingest(ctx, 1, "policy.txt", strings.NewReader("vacation policy allows 20 days"))
	require.NoError(t, err)

	// 空文档上传后旧索引保持可用
	_, err = f.service.Ingest(ctx, 1, "empty.txt", strings.NewReader(""))
	require.NoError(t, err)

	answer, err := f.service.Answer(ctx, 1, "vacation?", "policy.txt")
	require.NoError(t, err)
	assert.Equal(t, "synthesized answer", answer)
}

func TestService_IngestReplacesIndex(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Ingest(ctx, 1, "policy.txt", strings.NewReader("the vacation policy allows 20 days"))
	require.NoError(t, err)

	_, err = f.service.Ingest(ctx, 1, "handbook.txt", strings.NewReader("security rules require strong passwords"))
	require.NoError(t, err)

	// 默认检索范围切换到最新上传
	_, err = f.service.Answer(ctx, 1, "what are the rules?", "")
	require.NoError(t, err)
	assert.Contains(t, f.llm.lastPrompt, "security rules")
	assert.NotContains(t, f.llm.lastPrompt, "vacation policy")
}

func TestService_AnswerWithExplicitSource(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	// 同后端分区内保留多个来源时，可显式指定历史来源
	_, err := f.service.Ingest(ctx, 1, "handbook.txt", strings.NewReader("security rules require strong passwords"))
	require.NoError(t, err)

	answer, err := f.service.Answer(ctx, 1, "what about vacation?", "missing.txt")
	require.NoError(t, err)
	// 指定来源无匹配内容时返回固定文案
	assert.Equal(t, AnswerNoContext, answer)
}

func TestService_TenantIsolation(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Ingest(ctx, 1, "secret.txt", strings.NewReader("the vacation budget is confidential"))
	require.NoError(t, err)

	// 其他用户检索不到该内容
	answer, err := f.service.Answer(ctx, 2, "what is the vacation budget?", "")
	require.NoError(t, err)
	assert.Equal(t, AnswerNoContext, answer)
}

func TestService_FallbackBackend(t *testing.T) {
	f := newServiceFixture(t)
	f.primary.fail = true
	ctx := context.Background()

	result, err := f.service.Ingest(ctx, 1, "policy.txt", strings.NewReader("vacation policy allows 20 days"))
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, result.Backend)

	// 查询阶段复用索引时记录的本地后端
	answer, err := f.service.Answer(ctx, 1, "vacation days?", "")
	require.NoError(t, err)
	assert.Equal(t, "synthesized answer", answer)

	backend, err := f.records.ActiveBackend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, backend)
}

func TestService_AnswerNoDocuments(t *testing.T) {
	f := newServiceFixture(t)

	answer, err := f.service.Answer(context.Background(), 1, "anything?", "")
	require.NoError(t, err)
	assert.Equal(t, AnswerNoContext, answer)
}

func TestService_UnsupportedFormat(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Ingest(context.Background(), 1, "image.png", strings.NewReader("binary"))
	assert.Error(t, err)
}
