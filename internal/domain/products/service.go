package products

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/skinsight/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/skinsight/pkg/errors"
	"github.com/yanqian/skinsight/pkg/metrics"
)

const (
	featureName   = "product_recommendations"
	anonymousUser = "anonymous"
)

// Service produces personalized product lists.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
	Match(ctx context.Context, req MatchRequest) (PersonalizedProduct, error)
	Catalog(ctx context.Context, q CatalogQuery) ([]CatalogProduct, error)
}

// ChatClient is the subset of the ChatGPT client the service needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Cache stores raw AI responses keyed by request fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Limiter gates AI calls per user.
type Limiter interface {
	Allow(key string) bool
}

type service struct {
	cfg      Config
	catalog  *Catalog
	client   ChatClient
	cache    Cache
	limiter  Limiter
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewService wires up the product domain. cache, limiter and recorder may be nil.
func NewService(cfg Config, catalog *Catalog, client ChatClient, cache Cache, limiter Limiter, recorder *metrics.Recorder, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		catalog:  catalog,
		client:   client,
		cache:    cache,
		limiter:  limiter,
		recorder: recorder,
		logger:   logger.With("component", "products.service"),
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	if s.catalog == nil {
		return Response{}, apperrors.Wrap(apperrors.CodeCatalog, "product catalog not loaded", nil)
	}
	profile := cleanProfile(req.Profile)
	if profile.SkinType == "" && len(profile.Concerns) == 0 {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "profile needs a skin type or at least one concern", nil)
	}
	region := s.resolveRegion(req.Region)

	recs, status, usage := s.generate(ctx, req.UserID, profile, region)
	products := Personalize(recs, s.catalog, profile, region)
	for _, p := range products {
		s.recorder.Match(string(p.MatchKind))
	}

	resp := Response{Products: products, Region: region, AIStatus: status}
	if !usage.IsZero() {
		resp.TokenUsage = &usage
	}
	s.logger.Info("product recommendations built",
		"region", region,
		"aiStatus", status,
		"aiRecommendations", len(recs),
		"products", len(products),
	)
	return resp, nil
}

func (s *service) Match(_ context.Context, req MatchRequest) (PersonalizedProduct, error) {
	if s.catalog == nil {
		return PersonalizedProduct{}, apperrors.Wrap(apperrors.CodeCatalog, "product catalog not loaded", nil)
	}
	rec, err := ValidateRecommendation(req.Recommendation)
	if err != nil {
		return PersonalizedProduct{}, apperrors.Wrap(apperrors.CodeInvalidInput, "recommendation is invalid", err)
	}
	region := s.resolveRegion(req.Region)
	product, kind, ok := MatchRecommendation(rec, s.catalog, region)
	if !ok {
		s.recorder.Match("unmatched")
		return PersonalizedProduct{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("catalog has no %s", rec.Category), nil)
	}
	s.recorder.Match(string(kind))
	return PersonalizedProduct{
		CatalogProduct: product,
		AIInsight:      rec,
		MatchScore:     AcceptedScore(rec, req.Concerns),
		MatchKind:      kind,
	}, nil
}

func (s *service) Catalog(_ context.Context, q CatalogQuery) ([]CatalogProduct, error) {
	if s.catalog == nil {
		return nil, apperrors.Wrap(apperrors.CodeCatalog, "product catalog not loaded", nil)
	}
	q.Category = Category(normalize(string(q.Category)))
	if q.Category != "" && !q.Category.Valid() {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown category %q", q.Category), nil)
	}
	q.Region = strings.ToUpper(strings.TrimSpace(q.Region))
	return s.catalog.Filter(q), nil
}

func (s *service) generate(ctx context.Context, userID string, profile Profile, region string) ([]AIRecommendation, AIStatus, metrics.TokenUsage) {
	var usage metrics.TokenUsage
	if !s.cfg.AIEnabled || s.client == nil {
		s.recorder.AIRequest(featureName, string(AIStatusDisabled))
		return nil, AIStatusDisabled, usage
	}

	prompt := s.buildUserPrompt(profile, region)
	key := s.cacheKey(prompt)
	if s.cache != nil {
		raw, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("product cache lookup failed", "error", err)
		}
		if found {
			if recs, err := ParseRecommendations(raw); err == nil {
				s.recorder.AIRequest(featureName, string(AIStatusCached))
				return recs, AIStatusCached, usage
			}
		}
	}

	limiterKey := strings.TrimSpace(userID)
	if limiterKey == "" {
		limiterKey = anonymousUser
	}
	if s.limiter != nil && !s.limiter.Allow(limiterKey) {
		s.logger.Warn("product ai call rate limited", "user", limiterKey)
		s.recorder.AIRequest(featureName, string(AIStatusRateLimited))
		return nil, AIStatusRateLimited, usage
	}

	callCtx := ctx
	if s.cfg.AITimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.AITimeout)
		defer cancel()
	}
	completion, err := s.client.CreateChatCompletion(callCtx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		Messages: []chatgpt.Message{
			{Role: "system", Content: s.buildSystemPrompt()},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: chatgpt.JSONObject,
	})
	if err != nil {
		status := AIStatusFailed
		if apperrors.IsCode(err, apperrors.CodeConfig) {
			status = AIStatusUnconfigured
		} else {
			s.logger.Warn("product ai call failed", "error", err)
		}
		s.recorder.AIRequest(featureName, string(status))
		return nil, status, usage
	}
	usage = metrics.TokenUsage{
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
	}
	s.recorder.AITokens(featureName, usage)

	raw := completion.Content()
	recs, err := ParseRecommendations(raw)
	if err != nil {
		s.logger.Warn("product ai response rejected", "error", err)
		s.recorder.AIRequest(featureName, string(AIStatusFailed))
		return nil, AIStatusFailed, usage
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("product cache store failed", "error", err)
		}
	}
	s.recorder.AIRequest(featureName, string(AIStatusOK))
	return recs, AIStatusOK, usage
}

func (s *service) resolveRegion(region string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(region))
	if trimmed == "" {
		return strings.ToUpper(strings.TrimSpace(s.cfg.RegionDefault))
	}
	return trimmed
}

func (s *service) buildSystemPrompt() string {
	base := strings.TrimSpace(s.cfg.Prompt)
	if base == "" {
		base = "You are a dermatology-informed skincare advisor building a personalized routine."
	}
	enforcer := " Respond ONLY with valid minified JSON using this shape: {\"recommendations\":[{\"category\":string,\"productName\":string,\"brandName\":string,\"personalReason\":string,\"whyForYou\":string[3],\"skinTypeMatch\":string,\"concernsAddressed\":string[],\"priorityOrder\":number,\"usageTip\":string}]}." +
		" category must be one of cleansers, toners, serums, treatments, moisturizers, sunscreens, exfoliants, masks, eye_care. Prefer products from the provided catalog. Never return plain text or other fields."
	return base + enforcer
}

func (s *service) buildUserPrompt(profile Profile, region string) string {
	wire := struct {
		Profile Profile  `json:"profile"`
		Region  string   `json:"region,omitempty"`
		Catalog []string `json:"availableProducts"`
	}{
		Profile: profile,
		Region:  region,
		Catalog: s.catalog.Names(),
	}
	payload, err := json.Marshal(wire)
	if err != nil {
		payload = []byte("{}")
	}
	return fmt.Sprintf("Recommend a complete skincare routine for this user based ONLY on this profile and product list: %s", payload)
}

func (s *service) cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(s.cfg.Model + "|" + s.catalog.Fingerprint() + "|" + prompt))
	return "products:" + hex.EncodeToString(sum[:16])
}

func cleanProfile(p Profile) Profile {
	p.SkinType = normalize(p.SkinType)
	p.Sensitivity = strings.TrimSpace(p.Sensitivity)
	p.AgeRange = strings.TrimSpace(p.AgeRange)
	p.Concerns = normalizeAll(p.Concerns)
	p.Goals = normalizeAll(p.Goals)
	return p
}

func normalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{})
	for _, item := range items {
		clean := normalize(item)
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}
