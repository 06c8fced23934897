package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/skinsight/internal/domain/products"
	"github.com/yanqian/skinsight/internal/domain/weekly"
	"github.com/yanqian/skinsight/internal/infra/aicache"
	"github.com/yanqian/skinsight/internal/infra/catalog"
	"github.com/yanqian/skinsight/internal/infra/config"
	"github.com/yanqian/skinsight/internal/infra/llm/chatgpt"
	"github.com/yanqian/skinsight/pkg/metrics"
	"github.com/yanqian/skinsight/pkg/ratelimit"
)

const (
	aiCachePrefix      = "skinsight:ai"
	aiLimiterIdleTTL   = 30 * time.Minute
	catalogLoadTimeout = 10 * time.Second
	valkeyPingTimeout  = 2 * time.Second
)

// chatClient is satisfied by both the real client and chatgpt.Unavailable.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

func provideWeeklyConfig(cfg *config.Config) weekly.Config {
	return weekly.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Prompt:      cfg.Weekly.Prompt,
		CacheTTL:    cfg.Weekly.AICacheTTL,
		AITimeout:   cfg.LLM.Timeout,
		MaxItems:    cfg.Weekly.MaxItems,
		AIEnabled:   cfg.Weekly.AIEnabled,
	}
}

func provideProductsConfig(cfg *config.Config) products.Config {
	return products.Config{
		Model:         cfg.LLM.Model,
		Temperature:   cfg.LLM.Temperature,
		Prompt:        cfg.Products.Prompt,
		RegionDefault: cfg.Products.RegionDefault,
		CacheTTL:      cfg.Products.AICacheTTL,
		AITimeout:     cfg.LLM.Timeout,
		AIEnabled:     cfg.Products.AIEnabled,
	}
}

// provideChatClient returns the OpenAI client, or a stand-in that reports the
// missing credentials on every call so AI features degrade to rules.
func provideChatClient(cfg *config.Config, logger *slog.Logger) (chatClient, error) {
	if !cfg.LLM.Configured() {
		logger.Error("llm api key not configured, ai features will use rule-based fallbacks")
		return chatgpt.Unavailable{Reason: "ai service is not configured"}, nil
	}
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func provideAICache(cfg *config.Config, logger *slog.Logger) (aicache.Cache, func()) {
	fallback := func() (aicache.Cache, func()) {
		return aicache.NewMemoryCache(aiCachePrefix, cfg.Products.AICacheTTL), func() {}
	}
	if !cfg.Cache.Valkey.Enabled {
		return fallback()
	}
	opt, err := buildValkeyOptions(cfg.Cache.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return fallback()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), valkeyPingTimeout)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return fallback()
	}
	logger.Info("ai valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
	return aicache.NewValkeyCache(client, aiCachePrefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// provideCatalog loads the product catalog once at startup. Postgres wins when
// a DSN is configured; otherwise the YAML file is read.
func provideCatalog(cfg *config.Config, logger *slog.Logger) (*products.Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), catalogLoadTimeout)
	defer cancel()

	var src catalog.Source
	if dsn := strings.TrimSpace(cfg.Catalog.Postgres.DSN); dsn != "" {
		pool, err := catalog.NewPool(ctx, dsn, catalog.PoolOptions{
			MaxConns: cfg.Catalog.Postgres.MaxConns,
			MinConns: cfg.Catalog.Postgres.MinConns,
		})
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		src = catalog.NewPostgresSource(pool)
		logger.Info("loading catalog from postgres")
	} else {
		src = catalog.NewYAMLSource(cfg.Products.CatalogPath)
		logger.Info("loading catalog from file", "path", cfg.Products.CatalogPath)
	}

	loaded, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", "products", loaded.Len(), "fingerprint", loaded.Fingerprint())
	return loaded, nil
}

func provideProductsLimiter(cfg *config.Config) products.Limiter {
	return ratelimit.NewPerMinute(cfg.Products.AIRequestsPerMinute, cfg.Products.AIBurst, aiLimiterIdleTTL)
}

func provideMetricsRecorder() *metrics.Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.NewRecorder(registry)
}
