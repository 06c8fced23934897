package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Products ProductsConfig `yaml:"products"`
	Weekly   WeeklyConfig   `yaml:"weekly"`
	Cache    CacheConfig    `yaml:"cache"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	MaxBodyBytes   int64           `yaml:"maxBodyBytes"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"`
	RequestsPerMinute int           `yaml:"requestsPerMinute"`
	Burst             int           `yaml:"burst"`
	IdleTTL           time.Duration `yaml:"idleTtl"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Configured reports whether AI credentials are present.
func (c LLMConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// ProductsConfig controls the product recommendation domain.
type ProductsConfig struct {
	AIEnabled           bool          `yaml:"aiEnabled"`
	Prompt              string        `yaml:"prompt"`
	CatalogPath         string        `yaml:"catalogPath"`
	RegionDefault       string        `yaml:"regionDefault"`
	AICacheTTL          time.Duration `yaml:"aiCacheTtl"`
	AIRequestsPerMinute int           `yaml:"aiRequestsPerMinute"`
	AIBurst             int           `yaml:"aiBurst"`
}

// WeeklyConfig controls the weekly summary domain.
type WeeklyConfig struct {
	AIEnabled  bool          `yaml:"aiEnabled"`
	Prompt     string        `yaml:"prompt"`
	AICacheTTL time.Duration `yaml:"aiCacheTtl"`
	MaxItems   int           `yaml:"maxItems"`
}

// CacheConfig selects the AI response cache backend.
type CacheConfig struct {
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// CatalogConfig selects where the product catalog is loaded from.
type CatalogConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_MAX_BODY_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.HTTP.MaxBodyBytes = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("PRODUCTS_AI_ENABLED"); v != "" {
		cfg.Products.AIEnabled = parseBool(v)
	}
	if v := os.Getenv("PRODUCTS_CATALOG_PATH"); v != "" {
		cfg.Products.CatalogPath = v
	}
	if v := os.Getenv("PRODUCTS_REGION_DEFAULT"); v != "" {
		cfg.Products.RegionDefault = v
	}
	if v := os.Getenv("PRODUCTS_PROMPT"); v != "" {
		cfg.Products.Prompt = v
	}
	if v := os.Getenv("PRODUCTS_AI_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Products.AIRequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("WEEKLY_AI_ENABLED"); v != "" {
		cfg.Weekly.AIEnabled = parseBool(v)
	}
	if v := os.Getenv("WEEKLY_PROMPT"); v != "" {
		cfg.Weekly.Prompt = v
	}
	if v := os.Getenv("WEEKLY_MAX_ITEMS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weekly.MaxItems = parsed
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Cache.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("CATALOG_POSTGRES_DSN"); v != "" {
		cfg.Catalog.Postgres.DSN = v
	}
	if v := os.Getenv("CATALOG_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.Postgres.MaxConns = int32(parsed)
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 1 << 20,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
				IdleTTL:           10 * time.Minute,
			},
			AllowedOrigins: []string{"*"},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.4,
			Timeout:     20 * time.Second,
		},
		Products: ProductsConfig{
			AIEnabled:           true,
			Prompt:              "You are a dermatology-informed skincare advisor. Build a complete routine for the user's skin type and concerns, choosing products from the provided catalog whenever possible.",
			CatalogPath:         "configs/catalog.yaml",
			RegionDefault:       "US",
			AICacheTTL:          24 * time.Hour,
			AIRequestsPerMinute: 6,
			AIBurst:             2,
		},
		Weekly: WeeklyConfig{
			AIEnabled:  true,
			Prompt:     "You are a supportive skincare coach. Review the user's weekly activity and write short, encouraging insights and practical next steps.",
			AICacheTTL: 12 * time.Hour,
			MaxItems:   5,
		},
		Catalog: CatalogConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use. A missing LLM API key is
// allowed; AI features then run in fallback mode.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxBodyBytes < 0 {
		return errors.New("http.maxBodyBytes cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.RateLimit.IdleTTL < 0 {
		return errors.New("http.rateLimit.idleTtl cannot be negative")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout cannot be negative")
	}
	if strings.TrimSpace(c.Catalog.Postgres.DSN) == "" && strings.TrimSpace(c.Products.CatalogPath) == "" {
		return errors.New("products.catalogPath cannot be empty without catalog.postgres.dsn")
	}
	if c.Products.AICacheTTL < 0 {
		return errors.New("products.aiCacheTtl cannot be negative")
	}
	if c.Products.AIRequestsPerMinute < 0 || c.Products.AIBurst < 0 {
		return errors.New("products ai rate limit cannot be negative")
	}
	if c.Weekly.AICacheTTL < 0 {
		return errors.New("weekly.aiCacheTtl cannot be negative")
	}
	if c.Weekly.MaxItems <= 0 {
		return errors.New("weekly.maxItems must be positive")
	}
	if c.Cache.Valkey.Enabled && strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
		return errors.New("cache.valkey.addr cannot be empty when valkey cache is enabled")
	}
	return nil
}
