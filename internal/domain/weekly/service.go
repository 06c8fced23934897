package weekly

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
	"github.com/yanqian/skinsight/pkg/util"
)

const (
	featureName     = "weekly_summary"
	defaultMaxItems = 5
)

// Service builds weekly progress summaries.
type Service interface {
	Summarize(ctx context.Context, req Request) (WeeklySummary, error)
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

type service struct {
	cfg      Config
	client   ChatClient
	cache    Cache
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the weekly summary domain. cache and recorder may be nil.
func NewService(cfg Config, client ChatClient, cache Cache, recorder *metrics.Recorder, logger *slog.Logger) Service {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaultMaxItems
	}
	return &service{
		cfg:      cfg,
		client:   client,
		cache:    cache,
		recorder: recorder,
		logger:   logger.With("component", "weekly.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Summarize(ctx context.Context, req Request) (WeeklySummary, error) {
	ref, err := s.resolveReference(req.ReferenceDate)
	if err != nil {
		return WeeklySummary{}, apperrors.Wrap(apperrors.CodeInvalidInput, "referenceDate must be formatted as YYYY-MM-DD", err)
	}

	current := Aggregate(ref, req.Logs)
	var previous *WeeklyStats
	if prev := aggregate(ref.AddDate(0, 0, -7), req.Logs, 0); !prev.Empty() {
		previous = &prev
	}
	trends := CompareTrends(current, previous)

	// Rule output is computed before the AI call so a failure never blocks the summary.
	ruleInsights := RuleInsights(current, trends)
	ruleRecs := RuleRecommendations(current, trends)

	advice, status, usage := s.generate(ctx, current, previous, trends)
	summary := WeeklySummary{
		Stats:           current,
		PreviousStats:   previous,
		Trends:          trends,
		Insights:        MergeItems(advice.Insights, ruleInsights, s.cfg.MaxItems),
		Recommendations: MergeItems(advice.Recommendations, ruleRecs, s.cfg.MaxItems),
		AIStatus:        status,
	}
	if !usage.IsZero() {
		summary.TokenUsage = &usage
	}
	s.logger.Info("weekly summary built",
		"weekStart", current.WeekStart,
		"aiStatus", status,
		"insights", len(summary.Insights),
		"recommendations", len(summary.Recommendations),
	)
	return summary, nil
}

func (s *service) generate(ctx context.Context, current WeeklyStats, previous *WeeklyStats, trends Trends) (aiAdvice, AIStatus, metrics.TokenUsage) {
	var usage metrics.TokenUsage
	if !s.cfg.AIEnabled || s.client == nil {
		s.recorder.AIRequest(featureName, string(AIStatusDisabled))
		return aiAdvice{}, AIStatusDisabled, usage
	}

	payload, err := json.Marshal(promptPayload{Current: current, Previous: previous, Trends: trends})
	if err != nil {
		s.logger.Warn("weekly prompt encode failed", "error", err)
		s.recorder.AIRequest(featureName, string(AIStatusFailed))
		return aiAdvice{}, AIStatusFailed, usage
	}
	key := cacheKey(s.cfg.Model, payload)

	if s.cache != nil {
		raw, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("weekly cache lookup failed", "error", err)
		}
		if found {
			if advice, err := parseAdvice(raw); err == nil {
				s.recorder.AIRequest(featureName, string(AIStatusCached))
				return advice, AIStatusCached, usage
			}
		}
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
			{Role: "user", Content: buildUserPrompt(payload)},
		},
		ResponseFormat: chatgpt.JSONObject,
	})
	if err != nil {
		status := AIStatusFailed
		if apperrors.IsCode(err, apperrors.CodeConfig) {
			status = AIStatusUnconfigured
		} else {
			s.logger.Warn("weekly ai call failed", "error", err)
		}
		s.recorder.AIRequest(featureName, string(status))
		return aiAdvice{}, status, usage
	}
	usage = metrics.TokenUsage{
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
	}
	s.recorder.AITokens(featureName, usage)

	raw := completion.Content()
	advice, err := parseAdvice(raw)
	if err != nil {
		s.logger.Warn("weekly ai response malformed", "error", err)
		s.recorder.AIRequest(featureName, string(AIStatusFailed))
		return aiAdvice{}, AIStatusFailed, usage
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("weekly cache store failed", "error", err)
		}
	}
	s.recorder.AIRequest(featureName, string(AIStatusOK))
	return advice, AIStatusOK, usage
}

func (s *service) resolveReference(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return s.now(), nil
	}
	return util.ParseReference(trimmed)
}

type promptPayload struct {
	Current  WeeklyStats  `json:"currentWeek"`
	Previous *WeeklyStats `json:"previousWeek,omitempty"`
	Trends   Trends       `json:"trends"`
}

func (s *service) buildSystemPrompt() string {
	base := strings.TrimSpace(s.cfg.Prompt)
	if base == "" {
		base = "You are a supportive skincare coach reviewing a user's week."
	}
	enforcer := " Respond ONLY with valid minified JSON using this shape: {\"insights\":string[],\"recommendations\":string[]}. Use at most 3 short items per array. Never return plain text or other fields."
	return base + enforcer
}

func buildUserPrompt(payload []byte) string {
	return fmt.Sprintf("Write encouraging insights and practical recommendations based ONLY on this weekly activity data: %s", payload)
}

func cacheKey(model string, payload []byte) string {
	sum := sha256.Sum256(append([]byte(model+"|"), payload...))
	return "weekly:" + hex.EncodeToString(sum[:16])
}
