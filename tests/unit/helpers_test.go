package unit

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/yanqian/skinsight/internal/infra/llm/chatgpt"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubChatClient replays a canned completion and records every request.
type stubChatClient struct {
	mu       sync.Mutex
	content  string
	err      error
	requests []chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	return chatgpt.ChatCompletionResponse{
		Choices: []chatgpt.Choice{{Message: chatgpt.Message{Role: "assistant", Content: s.content}}},
		Usage:   chatgpt.Usage{PromptTokens: 120, CompletionTokens: 40, TotalTokens: 160},
	}, nil
}

func (s *stubChatClient) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
