package weekly

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/yanqian/skinsight/internal/domain/skinhealth"
	"github.com/yanqian/skinsight/pkg/util"
)

var moodValues = map[skinhealth.Mood]float64{
	skinhealth.MoodGreat: 4,
	skinhealth.MoodGood:  3,
	skinhealth.MoodOkay:  2,
	skinhealth.MoodBad:   1,
}

// WeekBounds returns the Monday and Sunday of the ISO week containing ref.
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := day.AddDate(0, 0, 1-weekday)
	return start, start.AddDate(0, 0, 6)
}

// Aggregate filters logs into the week containing ref and derives the stats.
func Aggregate(ref time.Time, logs Logs) WeeklyStats {
	return aggregate(ref, logs, logs.CurrentStreak)
}

func aggregate(ref time.Time, logs Logs, streak int) WeeklyStats {
	start, end := WeekBounds(ref)
	from, to := start.Format(util.DateLayout), end.Format(util.DateLayout)
	inWeek := func(date string) bool {
		key := util.DayKey(date)
		return key >= from && key <= to
	}

	out := WeeklyStats{
		WeekStart:     from,
		WeekEnd:       to,
		Achievements:  []string{},
		Highlights:    []string{},
		CurrentStreak: streak,
	}

	var analyzed []PhotoLog
	for _, p := range logs.Photos {
		if !inWeek(p.Date) {
			continue
		}
		out.PhotosTaken++
		if p.Analysis != nil {
			analyzed = append(analyzed, p)
		}
	}

	var moods, sleep, water []float64
	for _, e := range logs.Journal {
		if !inWeek(e.Date) {
			continue
		}
		out.JournalEntries++
		if v, ok := moodValues[e.Mood]; ok {
			moods = append(moods, v)
		}
		// A zero sleep or water value is a logged zero and counts toward the mean.
		sleep = append(sleep, e.SleepHours)
		water = append(water, e.WaterIntakeGlasses)
	}
	out.AverageMood = average(moods)
	out.AverageSleep = average(sleep)
	out.AverageWater = average(water)

	completedDays := make(map[string]struct{})
	for _, c := range logs.Completions {
		if inWeek(c.Date) {
			completedDays[util.DayKey(c.Date)] = struct{}{}
		}
	}
	out.RoutineCompletions = len(completedDays)
	out.RoutineCompletionRate = round1(float64(out.RoutineCompletions) / 7 * 100)

	for _, b := range logs.Badges {
		if inWeek(b.Date) {
			out.BadgesEarned++
		}
	}
	for _, a := range logs.Achievements {
		if inWeek(a.Date) {
			out.Achievements = append(out.Achievements, a.Title)
		}
	}
	for _, p := range logs.Points {
		if inWeek(p.Date) {
			out.PointsEarned += p.Points
		}
	}

	if len(analyzed) >= 2 {
		sort.SliceStable(analyzed, func(i, j int) bool {
			return util.DayKey(analyzed[i].Date) < util.DayKey(analyzed[j].Date)
		})
		change := round1(glowScore(*analyzed[len(analyzed)-1].Analysis) - glowScore(*analyzed[0].Analysis))
		out.GlowScoreChange = &change
	}

	out.Highlights = highlights(out)
	return out
}

func glowScore(a PhotoAnalysis) float64 {
	return (a.Hydration + a.Texture + a.Brightness + (100 - a.Acne)) / 4
}

func highlights(s WeeklyStats) []string {
	out := []string{}
	if s.RoutineCompletions >= 7 {
		out = append(out, "Perfect week! You completed your routine all 7 days.")
	}
	if s.CurrentStreak >= 7 {
		out = append(out, fmt.Sprintf("You're on a %d-day streak.", s.CurrentStreak))
	}
	if s.PointsEarned >= 500 {
		out = append(out, fmt.Sprintf("You earned %d points this week.", s.PointsEarned))
	}
	if s.BadgesEarned > 0 {
		out = append(out, fmt.Sprintf("You unlocked %d new badge(s).", s.BadgesEarned))
	}
	if s.AverageMood != nil && *s.AverageMood >= 3.5 {
		out = append(out, "Your mood was great this week.")
	}
	if s.AverageSleep != nil && *s.AverageSleep >= 7 {
		out = append(out, fmt.Sprintf("You averaged %.1f hours of sleep.", *s.AverageSleep))
	}
	return out
}

func average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	m = round2(m)
	return &m
}

func round1(v float64) float64 {
	r, _ := stats.Round(v, 1)
	return r
}

func round2(v float64) float64 {
	r, _ := stats.Round(v, 2)
	return r
}
