package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/skinsight/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/skinsight/pkg/errors"
	"github.com/yanqian/skinsight/pkg/metrics"
	"github.com/yanqian/skinsight/pkg/ratelimit"
)

const aiResponse = `{"recommendations":[
{"category":"serums","productName":"Niacinamide 10% + Zinc 1%","brandName":"The Ordinary","personalReason":"Balances oil","whyForYou":["oil control","pores","acne"],"skinTypeMatch":"oily","concernsAddressed":["acne","oiliness"],"priorityOrder":1,"usageTip":"Evening"},
{"category":"cleansers","productName":"Foaming Facial Cleanser","brandName":"CeraVe","personalReason":"Gentle","whyForYou":["gentle"],"skinTypeMatch":"oily","concernsAddressed":["acne"],"priorityOrder":2,"usageTip":"Twice daily"}
]}`

func newTestService(t *testing.T, client ChatClient, cache Cache, limiter Limiter) Service {
	t.Helper()
	return NewService(Config{
		Model:         "gpt-4o-mini",
		RegionDefault: "us",
		CacheTTL:      time.Hour,
		AITimeout:     time.Second,
		AIEnabled:     true,
	}, fixtureCatalog(t), client, cache, limiter, metrics.NewNopRecorder(), discardLogger())
}

func oilyRequest() Request {
	return Request{UserID: "u-1", Profile: Profile{SkinType: "Oily", Concerns: []string{"Acne", "oiliness", "acne"}}}
}

func TestRecommendUsesAI(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{content: aiResponse, usage: chatgpt.Usage{TotalTokens: 321, PromptTokens: 300, CompletionTokens: 21}}
	svc := newTestService(t, client, nil, nil)

	resp, err := svc.Recommend(context.Background(), oilyRequest())
	require.NoError(t, err)
	require.Equal(t, AIStatusOK, resp.AIStatus)
	require.Equal(t, "US", resp.Region)
	require.Len(t, resp.Products, 4)
	require.Equal(t, "ordinary-niacinamide", resp.Products[0].CatalogProduct.ID)
	require.Equal(t, MatchKindMatched, resp.Products[0].MatchKind)
	require.Equal(t, 94, resp.Products[0].MatchScore)
	require.Equal(t, "cerave-hydrating-cleanser", resp.Products[1].CatalogProduct.ID)
	require.Equal(t, MatchKindSynthesized, resp.Products[2].MatchKind)
	require.Equal(t, MatchKindSynthesized, resp.Products[3].MatchKind)
	require.Equal(t, 321, resp.TokenUsage.TotalTokens)

	require.Len(t, client.lastReq.Messages, 2)
	require.Contains(t, client.lastReq.Messages[1].Content, "CeraVe Hydrating Facial Cleanser")
	require.Equal(t, chatgpt.JSONObject, client.lastReq.ResponseFormat)
}

func TestRecommendFallsBack(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		client  ChatClient
		limiter Limiter
		status  AIStatus
	}{
		{name: "transport error", client: &stubChatClient{err: errors.New("timeout")}, status: AIStatusFailed},
		{name: "malformed", client: &stubChatClient{content: `{"recommendations":[{"category":"serums"}]}`}, status: AIStatusFailed},
		{name: "unconfigured", client: chatgpt.Unavailable{}, status: AIStatusUnconfigured},
		{name: "rate limited", client: &stubChatClient{content: aiResponse}, limiter: denyLimiter{}, status: AIStatusRateLimited},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, tc.client, nil, tc.limiter)
			resp, err := svc.Recommend(context.Background(), oilyRequest())
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.AIStatus)
			require.Len(t, resp.Products, len(RequiredCategories))
			for i, category := range RequiredCategories {
				require.Equal(t, category, resp.Products[i].CatalogProduct.Category)
				require.Equal(t, MatchKindSynthesized, resp.Products[i].MatchKind)
			}
			require.Nil(t, resp.TokenUsage)
		})
	}
}

func TestRecommendCachesAndRateLimits(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{content: aiResponse}
	limiter := ratelimit.NewPerMinute(1, 1, time.Minute)
	svc := newTestService(t, client, newMemoryCache(), limiter)

	first, err := svc.Recommend(context.Background(), oilyRequest())
	require.NoError(t, err)
	require.Equal(t, AIStatusOK, first.AIStatus)

	second, err := svc.Recommend(context.Background(), oilyRequest())
	require.NoError(t, err)
	require.Equal(t, AIStatusCached, second.AIStatus)
	require.Equal(t, first.Products, second.Products)
	require.Equal(t, 1, client.callCount())

	other := oilyRequest()
	other.Profile.Concerns = []string{"dryness"}
	third, err := svc.Recommend(context.Background(), other)
	require.NoError(t, err)
	require.Equal(t, AIStatusRateLimited, third.AIStatus)
	require.Equal(t, 1, client.callCount())
}

func TestRecommendDisabled(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{content: aiResponse}
	svc := NewService(Config{}, fixtureCatalog(t), client, nil, nil, nil, discardLogger())

	resp, err := svc.Recommend(context.Background(), oilyRequest())
	require.NoError(t, err)
	require.Equal(t, AIStatusDisabled, resp.AIStatus)
	require.Zero(t, client.callCount())
}

func TestRecommendValidatesProfile(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubChatClient{}, nil, nil)
	_, err := svc.Recommend(context.Background(), Request{Profile: Profile{Concerns: []string{" "}}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubChatClient{}, nil, nil)

	got, err := svc.Match(context.Background(), MatchRequest{
		Recommendation: AIRecommendation{
			Category:          CategoryCleansers,
			ProductName:       "Foaming Facial Cleanser",
			BrandName:         "CeraVe",
			WhyForYou:         []string{"gentle"},
			ConcernsAddressed: []string{"dryness"},
			PriorityOrder:     1,
		},
		Concerns: []string{"dryness"},
	})
	require.NoError(t, err)
	require.Equal(t, "cerave-hydrating-cleanser", got.CatalogProduct.ID)
	require.Equal(t, MatchKindMatched, got.MatchKind)
	require.Equal(t, 86, got.MatchScore)

	_, err = svc.Match(context.Background(), MatchRequest{Recommendation: AIRecommendation{Category: CategoryCleansers}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Match(context.Background(), MatchRequest{Recommendation: AIRecommendation{
		Category: CategoryMasks, ProductName: "Clay", BrandName: "Nobody", WhyForYou: []string{"x"}, PriorityOrder: 1,
	}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestCatalogListing(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubChatClient{}, nil, nil)

	all, err := svc.Catalog(context.Background(), CatalogQuery{})
	require.NoError(t, err)
	require.Len(t, all, len(fixtureProducts()))

	sg, err := svc.Catalog(context.Background(), CatalogQuery{Category: "Sunscreens", Region: " sg "})
	require.NoError(t, err)
	require.Len(t, sg, 1)

	_, err = svc.Catalog(context.Background(), CatalogQuery{Category: "lipstick"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}
