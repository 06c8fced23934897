package products

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/skinsight/internal/infra/llm/chatgpt"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func availableIn(codes ...string) []RegionalAvailability {
	out := make([]RegionalAvailability, 0, len(codes))
	for _, c := range codes {
		out = append(out, RegionalAvailability{CountryCode: c, Available: true})
	}
	return out
}

func fixtureProducts() []CatalogProduct {
	return []CatalogProduct{
		{ID: "cerave-hydrating-cleanser", Brand: "CeraVe", Name: "Hydrating Facial Cleanser", Category: CategoryCleansers,
			Concerns: []string{"dryness", "sensitivity"}, RegionalAvailability: availableIn("US", "SG")},
		{ID: "lrp-toleriane-cleanser", Brand: "La Roche-Posay", Name: "Toleriane Purifying Foaming Cleanser", Category: CategoryCleansers,
			Concerns: []string{"acne", "oiliness"}, RegionalAvailability: availableIn("US", "FR")},
		{ID: "ordinary-niacinamide", Brand: "The Ordinary", Name: "Niacinamide 10% + Zinc 1%", Category: CategorySerums,
			Concerns: []string{"acne", "oiliness", "pores"}, RegionalAvailability: availableIn("US", "SG", "FR")},
		{ID: "ordinary-ha", Brand: "The Ordinary", Name: "Hyaluronic Acid 2% + B5", Category: CategorySerums,
			Concerns: []string{"dryness", "dehydration"}, RegionalAvailability: availableIn("US")},
		{ID: "cerave-pm", Brand: "CeraVe", Name: "PM Facial Moisturizing Lotion", Category: CategoryMoisturizers,
			Concerns: []string{"dryness", "barrier"}, RegionalAvailability: availableIn("US", "SG")},
		{ID: "lrp-anthelios", Brand: "La Roche-Posay", Name: "Anthelios Melt-in Milk Sunscreen SPF 60", Category: CategorySunscreens,
			Concerns: []string{"sun protection"}, RegionalAvailability: availableIn("US", "FR")},
		{ID: "biore-aqua", Brand: "Biore", Name: "UV Aqua Rich Watery Essence SPF50+", Category: CategorySunscreens,
			Concerns: []string{"sun protection", "oiliness"}, RegionalAvailability: availableIn("SG", "JP")},
		{ID: "pixi-glow-tonic", Brand: "Pixi", Name: "Glow Tonic", Category: CategoryToners,
			Concerns: []string{"dullness"}, RegionalAvailability: availableIn("US")},
	}
}

func fixtureCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(fixtureProducts())
	require.NoError(t, err)
	return catalog
}

type stubChatClient struct {
	mu      sync.Mutex
	calls   int
	content string
	err     error
	usage   chatgpt.Usage
	lastReq chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	return chatgpt.ChatCompletionResponse{
		Choices: []chatgpt.Choice{{Message: chatgpt.Message{Role: "assistant", Content: s.content}}},
		Usage:   s.usage,
	}, nil
}

func (s *stubChatClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
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

type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }
