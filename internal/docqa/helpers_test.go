package docqa

import (
	"context"
	"errors"
	"strings"
)

// fakeEmbedder 基于关键词计数生成确定性向量
type fakeEmbedder struct {
	backend    Backend
	fail       bool
	emptyVec   bool
	probeCalls int
	docCalls   int
}

var fakeTerms = []string{"vacation", "holiday", "remote", "security", "password"}

func fakeVector(text string) []float32 {
	vec := make([]float32, len(fakeTerms)+1)
	lower := strings.ToLower(text)
	for i, term := range fakeTerms {
		vec[i] = float32(strings.Count(lower, term))
	}
	vec[len(fakeTerms)] = 1
	return vec
}

func (f *fakeEmbedder) Backend() Backend {
	return f.backend
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	f.docCalls++
	if f.fail {
		return nil, errors.New("embedder unavailable")
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = fakeVector(text)
	}
	return vectors, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.probeCalls++
	if f.fail {
		return nil, errors.New("embedder unavailable")
	}
	if f.emptyVec {
		return []float32{}, nil
	}
	return fakeVector(text), nil
}

// fakeLLM 记录提示词并返回固定回答
type fakeLLM struct {
	answer     string
	fail       bool
	lastPrompt string
}

func (f *fakeLLM) Model() string {
	return "fake-model"
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.fail {
		return "", errors.New("llm unavailable")
	}
	return f.answer, nil
}
