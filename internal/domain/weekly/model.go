package weekly

import (
	"time"

	"github.com/yanqian/skinsight/internal/domain/skinhealth"
	"github.com/yanqian/skinsight/pkg/metrics"
)

// Config controls the weekly summary service.
type Config struct {
	Model       string
	Temperature float32
	Prompt      string
	CacheTTL    time.Duration
	AITimeout   time.Duration
	MaxItems    int
	AIEnabled   bool
}

// PhotoAnalysis is the subset of a photo analysis used for the glow score.
type PhotoAnalysis struct {
	Acne       float64 `json:"acne"`
	Hydration  float64 `json:"hydration"`
	Texture    float64 `json:"texture"`
	Brightness float64 `json:"brightness"`
}

// PhotoLog is a progress photo; Analysis is nil until the photo is analyzed.
type PhotoLog struct {
	Date     string         `json:"date"`
	Analysis *PhotoAnalysis `json:"analysis,omitempty"`
}

// CompletionLog marks a completed routine.
type CompletionLog struct {
	Date      string `json:"date"`
	RoutineID string `json:"routineId,omitempty"`
}

// BadgeLog is an unlocked badge.
type BadgeLog struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// AchievementLog is an unlocked achievement.
type AchievementLog struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

// PointEvent is a gamification point award.
type PointEvent struct {
	Date   string `json:"date"`
	Points int    `json:"points"`
	Reason string `json:"reason,omitempty"`
}

// Logs is the user's raw activity, unfiltered by date.
type Logs struct {
	Photos        []PhotoLog                `json:"photos"`
	Journal       []skinhealth.JournalEntry `json:"journal"`
	Completions   []CompletionLog           `json:"completions"`
	Badges        []BadgeLog                `json:"badges"`
	Achievements  []AchievementLog          `json:"achievements"`
	Points        []PointEvent              `json:"points"`
	CurrentStreak int                       `json:"currentStreak"`
}

// WeeklyStats aggregates one Monday-Sunday week. Pointer fields are nil when
// the week has no data for them, which is distinct from a zero value.
type WeeklyStats struct {
	WeekStart             string   `json:"weekStart"`
	WeekEnd               string   `json:"weekEnd"`
	PhotosTaken           int      `json:"photosTaken"`
	JournalEntries        int      `json:"journalEntries"`
	RoutineCompletions    int      `json:"routineCompletions"`
	RoutineCompletionRate float64  `json:"routineCompletionRate"`
	AverageMood           *float64 `json:"averageMood,omitempty"`
	AverageSleep          *float64 `json:"averageSleep,omitempty"`
	AverageWater          *float64 `json:"averageWater,omitempty"`
	PointsEarned          int      `json:"pointsEarned"`
	BadgesEarned          int      `json:"badgesEarned"`
	Achievements          []string `json:"achievements"`
	CurrentStreak         int      `json:"currentStreak"`
	GlowScoreChange       *float64 `json:"glowScoreChange,omitempty"`
	Highlights            []string `json:"highlights"`
}

// Empty reports whether no log of any kind fell into the week.
func (s WeeklyStats) Empty() bool {
	return s.PhotosTaken == 0 && s.JournalEntries == 0 && s.RoutineCompletions == 0 &&
		s.BadgesEarned == 0 && len(s.Achievements) == 0 && s.PointsEarned == 0
}

// Trend is the week-over-week direction of a metric.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Trends compares the current week against the previous one.
type Trends struct {
	Mood        Trend `json:"mood"`
	Sleep       Trend `json:"sleep"`
	Water       Trend `json:"water"`
	Consistency Trend `json:"consistency"`
}

// AIStatus explains whether AI text was merged into the summary.
type AIStatus string

const (
	AIStatusOK           AIStatus = "ok"
	AIStatusCached       AIStatus = "cached"
	AIStatusFailed       AIStatus = "failed"
	AIStatusUnconfigured AIStatus = "unconfigured"
	AIStatusDisabled     AIStatus = "disabled"
)

// Request asks for the summary of the week containing ReferenceDate.
type Request struct {
	UserID        string `json:"userId,omitempty"`
	ReferenceDate string `json:"referenceDate,omitempty"`
	Logs          Logs   `json:"logs"`
}

// WeeklySummary is returned to the presentation layer.
type WeeklySummary struct {
	Stats           WeeklyStats         `json:"stats"`
	PreviousStats   *WeeklyStats        `json:"previousStats,omitempty"`
	Trends          Trends              `json:"trends"`
	Insights        []string            `json:"insights"`
	Recommendations []string            `json:"recommendations"`
	AIStatus        AIStatus            `json:"aiStatus"`
	TokenUsage      *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
