package weekly

import (
	"fmt"
)

const (
	moodThreshold        = 0.2
	sleepThreshold       = 0.5
	waterThreshold       = 1.0
	consistencyThreshold = 1.0
)

// CompareTrends classifies each metric against the previous week. A nil
// previous week, or a metric absent from either week, is stable.
func CompareTrends(current WeeklyStats, previous *WeeklyStats) Trends {
	out := Trends{
		Mood:        TrendStable,
		Sleep:       TrendStable,
		Water:       TrendStable,
		Consistency: TrendStable,
	}
	if previous == nil {
		return out
	}
	out.Mood = compareOptional(current.AverageMood, previous.AverageMood, moodThreshold)
	out.Sleep = compareOptional(current.AverageSleep, previous.AverageSleep, sleepThreshold)
	out.Water = compareOptional(current.AverageWater, previous.AverageWater, waterThreshold)
	out.Consistency = classify(float64(current.RoutineCompletions-previous.RoutineCompletions), consistencyThreshold)
	return out
}

func compareOptional(current, previous *float64, threshold float64) Trend {
	if current == nil || previous == nil {
		return TrendStable
	}
	return classify(*current-*previous, threshold)
}

func classify(delta, threshold float64) Trend {
	switch {
	case delta >= threshold:
		return TrendImproving
	case delta <= -threshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// RuleInsights derives observations from the stats and trends.
func RuleInsights(stats WeeklyStats, trends Trends) []string {
	var out []string
	switch trends.Mood {
	case TrendImproving:
		out = append(out, "Your mood improved compared to last week.")
	case TrendDeclining:
		out = append(out, "Your mood dipped compared to last week. Be gentle with yourself.")
	}
	switch trends.Sleep {
	case TrendImproving:
		out = append(out, "You slept more than last week, which supports skin repair.")
	case TrendDeclining:
		out = append(out, "You slept less than last week.")
	}
	switch trends.Water {
	case TrendImproving:
		out = append(out, "Your hydration habits improved this week.")
	case TrendDeclining:
		out = append(out, "You drank less water than last week.")
	}
	switch trends.Consistency {
	case TrendImproving:
		out = append(out, "You completed your routine more often than last week.")
	case TrendDeclining:
		out = append(out, "Your routine consistency slipped compared to last week.")
	}
	if stats.GlowScoreChange != nil {
		switch change := *stats.GlowScoreChange; {
		case change > 0:
			out = append(out, fmt.Sprintf("Your glow score rose by %.1f points this week.", change))
		case change < 0:
			out = append(out, fmt.Sprintf("Your glow score dropped by %.1f points this week.", -change))
		}
	}
	if stats.RoutineCompletionRate >= 85 {
		out = append(out, "Your routine consistency is excellent.")
	}
	if len(out) == 0 {
		out = append(out, "Keep logging your routine and journal to unlock more personalized insights.")
	}
	return out
}

// RuleRecommendations derives next steps from the stats and trends.
func RuleRecommendations(stats WeeklyStats, trends Trends) []string {
	var out []string
	if stats.RoutineCompletionRate < 70 {
		out = append(out, "Set a daily reminder to complete your skincare routine.")
	}
	if stats.AverageSleep != nil && *stats.AverageSleep < 7 {
		out = append(out, "Aim for at least 7 hours of sleep to support skin recovery.")
	}
	if stats.AverageWater != nil && *stats.AverageWater < 6 {
		out = append(out, "Drink more water throughout the day; target 8 glasses.")
	}
	if stats.PhotosTaken < 2 {
		out = append(out, "Take at least two progress photos per week to track changes.")
	}
	if stats.AverageMood != nil && *stats.AverageMood < 2.5 {
		out = append(out, "Try a short stress-relief practice; stress can show up on your skin.")
	}
	if stats.GlowScoreChange != nil && *stats.GlowScoreChange < 0 {
		out = append(out, "Review any products you added recently in case they are irritating your skin.")
	}
	if trends.Consistency == TrendDeclining && stats.RoutineCompletionRate >= 70 {
		out = append(out, "Keep your routine simple on busy days so you do not lose momentum.")
	}
	if len(out) == 0 {
		out = append(out, "Keep up your current routine; it is working well.")
	}
	return out
}
