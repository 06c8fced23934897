package weekly

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/skinsight/internal/domain/skinhealth"
	"github.com/yanqian/skinsight/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/skinsight/pkg/errors"
	"github.com/yanqian/skinsight/pkg/metrics"
)

func newTestService(client ChatClient, cache Cache) *service {
	svc := NewService(Config{
		Model:     "gpt-4o-mini",
		CacheTTL:  time.Hour,
		AITimeout: time.Second,
		MaxItems:  5,
		AIEnabled: true,
	}, client, cache, metrics.NewNopRecorder(), discardLogger()).(*service)
	svc.now = func() time.Time { return mustDate("2024-03-13") }
	return svc
}

func TestSummarizeMergesAIOutput(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{
		content: "```json\n{\"insights\":[\"Your skin looks brighter this week.\"],\"recommendations\":[\"Take at least two progress photos per week, ideally in daylight.\"]}\n```",
		usage:   chatgpt.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
	}
	svc := newTestService(client, nil)

	summary, err := svc.Summarize(context.Background(), Request{ReferenceDate: "2024-03-13", Logs: Logs{
		Journal: []skinhealth.JournalEntry{{Date: "2024-03-12", SleepHours: 6, WaterIntakeGlasses: 8, Mood: skinhealth.MoodOkay}},
	}})
	require.NoError(t, err)
	require.Equal(t, AIStatusOK, summary.AIStatus)
	require.Equal(t, "Your skin looks brighter this week.", summary.Insights[0])
	require.Equal(t, "Take at least two progress photos per week, ideally in daylight.", summary.Recommendations[0])
	require.NotContains(t, summary.Recommendations, "Take at least two progress photos per week to track changes.")
	require.LessOrEqual(t, len(summary.Recommendations), 5)
	require.NotNil(t, summary.TokenUsage)
	require.Equal(t, 120, summary.TokenUsage.TotalTokens)
	require.Equal(t, chatgpt.JSONObject, client.lastReq.ResponseFormat)
}

func TestSummarizeFallsBackToRules(t *testing.T) {
	t.Parallel()

	logs := Logs{Journal: []skinhealth.JournalEntry{{Date: "2024-03-12", SleepHours: 6, Mood: skinhealth.MoodOkay}}}
	cases := []struct {
		name   string
		client ChatClient
		status AIStatus
	}{
		{name: "transport error", client: &stubChatClient{err: errors.New("boom")}, status: AIStatusFailed},
		{name: "malformed json", client: &stubChatClient{content: "sorry, I cannot help"}, status: AIStatusFailed},
		{name: "wrong element type", client: &stubChatClient{content: `{"insights":[1,2]}`}, status: AIStatusFailed},
		{name: "unconfigured", client: chatgpt.Unavailable{}, status: AIStatusUnconfigured},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(tc.client, nil)
			summary, err := svc.Summarize(context.Background(), Request{Logs: logs})
			require.NoError(t, err)
			require.Equal(t, tc.status, summary.AIStatus)

			trends := CompareTrends(summary.Stats, summary.PreviousStats)
			require.Equal(t, RuleInsights(summary.Stats, trends), summary.Insights)
			require.Equal(t, RuleRecommendations(summary.Stats, trends), summary.Recommendations)
		})
	}
}

func TestSummarizeDisabled(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{content: `{"insights":["x"]}`}
	svc := newTestService(client, nil)
	svc.cfg.AIEnabled = false

	summary, err := svc.Summarize(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, AIStatusDisabled, summary.AIStatus)
	require.Zero(t, client.calls)
}

func TestSummarizeUsesCache(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{content: `{"insights":["Nice work."],"recommendations":[]}`}
	svc := newTestService(client, newMemoryCache())
	req := Request{ReferenceDate: "2024-03-13"}

	first, err := svc.Summarize(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, AIStatusOK, first.AIStatus)

	second, err := svc.Summarize(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, AIStatusCached, second.AIStatus)
	require.Equal(t, first.Insights, second.Insights)
	require.Equal(t, 1, client.calls)
}

func TestSummarizeAppliesTimeout(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{content: `{"insights":["x"]}`}
	client.onCreate = func(ctx context.Context) {
		_, ok := ctx.Deadline()
		require.True(t, ok)
	}
	svc := newTestService(client, nil)
	_, err := svc.Summarize(context.Background(), Request{})
	require.NoError(t, err)
}

func TestSummarizePreviousWeek(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubChatClient{err: errors.New("offline")}, nil)
	logs := Logs{
		Journal: []skinhealth.JournalEntry{
			{Date: "2024-03-05", SleepHours: 6, Mood: skinhealth.MoodBad},
			{Date: "2024-03-12", SleepHours: 8, Mood: skinhealth.MoodGreat},
		},
		CurrentStreak: 3,
	}

	summary, err := svc.Summarize(context.Background(), Request{ReferenceDate: "2024-03-13", Logs: logs})
	require.NoError(t, err)
	require.NotNil(t, summary.PreviousStats)
	require.Equal(t, "2024-03-04", summary.PreviousStats.WeekStart)
	require.Equal(t, 0, summary.PreviousStats.CurrentStreak)
	require.Equal(t, TrendImproving, summary.Trends.Mood)
	require.Equal(t, TrendImproving, summary.Trends.Sleep)
	require.Equal(t, TrendStable, summary.Trends.Water)

	summary, err = svc.Summarize(context.Background(), Request{ReferenceDate: "2024-03-06", Logs: logs})
	require.NoError(t, err)
	require.Nil(t, summary.PreviousStats)
	require.Equal(t, TrendStable, summary.Trends.Mood)
}

func TestSummarizeKeepsTimestampDay(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubChatClient{err: errors.New("offline")}, nil)
	cases := []struct {
		reference string
		weekStart string
	}{
		{reference: "2024-03-11T01:00:00+08:00", weekStart: "2024-03-11"},
		{reference: "2024-03-10T23:00:00-05:00", weekStart: "2024-03-04"},
		{reference: "2024-03-11T00:30:00Z", weekStart: "2024-03-11"},
	}
	for _, tc := range cases {
		summary, err := svc.Summarize(context.Background(), Request{ReferenceDate: tc.reference})
		require.NoError(t, err)
		require.Equal(t, tc.weekStart, summary.Stats.WeekStart, tc.reference)
	}
}

func TestSummarizeRejectsBadDate(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubChatClient{}, nil)
	_, err := svc.Summarize(context.Background(), Request{ReferenceDate: "13/03/2024"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}
