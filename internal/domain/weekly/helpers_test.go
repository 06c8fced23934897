package weekly

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/yanqian/skinsight/internal/infra/llm/chatgpt"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(v float64) *float64 { return &v }

type stubChatClient struct {
	mu       sync.Mutex
	calls    int
	content  string
	err      error
	lastReq  chatgpt.ChatCompletionRequest
	usage    chatgpt.Usage
	onCreate func(ctx context.Context)
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.mu.Lock()
	s.calls++
	s.lastReq = req
	s.mu.Unlock()
	if s.onCreate != nil {
		s.onCreate(ctx)
	}
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	return chatgpt.ChatCompletionResponse{
		Choices: []chatgpt.Choice{{Message: chatgpt.Message{Role: "assistant", Content: s.content}}},
		Usage:   s.usage,
	}, nil
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}
