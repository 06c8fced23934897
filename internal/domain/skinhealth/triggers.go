package skinhealth

import (
	"fmt"
	"sort"
	"time"

	"github.com/yanqian/skinsight/pkg/util"
)

const (
	triggerThreshold   = 0.3
	highConfidenceR    = 0.5
	highStressLevel    = 4
	lowSleepHours      = 7.0
	breakoutWindowDays = 2
	productOnsetWindow = 14
	confidenceHigh     = "high"
	confidenceMedium   = "medium"
)

// FindAcneTriggers correlates journal habits and product starts against
// breakouts. A trigger is only emitted when its correlation exceeds 0.3; the
// result is sorted by correlation, strongest first.
func FindAcneTriggers(entries []JournalEntry, breakouts []BreakoutEvent, usage []ProductUsageRecord) []AcneTrigger {
	triggers := make([]AcneTrigger, 0, 2+len(usage))
	if len(breakouts) == 0 {
		return triggers
	}

	severity := severityByJournalDay(entries, breakouts)
	breakoutDays := parsedBreakoutDays(breakouts)

	stress := make([]DatedValue, 0, len(entries))
	sleep := make([]DatedValue, 0, len(entries))
	for _, e := range entries {
		stress = append(stress, DatedValue{Date: e.Date, Value: float64(e.StressLevel)})
		sleep = append(sleep, DatedValue{Date: e.Date, Value: e.SleepHours})
	}

	if r := Correlate(stress, severity); r > triggerThreshold {
		freq := breakoutFrequency(entries, breakoutDays, func(e JournalEntry) bool { return e.StressLevel >= highStressLevel })
		triggers = append(triggers, AcneTrigger{
			Type:           TriggerStress,
			Factor:         "High stress",
			Correlation:    round1(r * 100),
			Confidence:     confidenceFor(r),
			Frequency:      round1(freq),
			Description:    fmt.Sprintf("Breakouts followed %.0f%% of your high-stress days.", freq),
			Recommendation: "Try a short wind-down routine on stressful days and keep your skincare gentle.",
		})
	}

	if r := Correlate(sleep, severity); r < -triggerThreshold {
		freq := breakoutFrequency(entries, breakoutDays, func(e JournalEntry) bool { return e.SleepHours < lowSleepHours })
		triggers = append(triggers, AcneTrigger{
			Type:           TriggerSleep,
			Factor:         "Poor sleep",
			Correlation:    round1(-r * 100),
			Confidence:     confidenceFor(-r),
			Frequency:      round1(freq),
			Description:    fmt.Sprintf("Breakouts appeared around %.0f%% of nights with under 7 hours of sleep.", freq),
			Recommendation: "Aim for 7-9 hours of sleep and change your pillowcase regularly.",
		})
	}

	for _, u := range usage {
		started, ok := util.ParseDate(u.DateStarted)
		if !ok {
			continue
		}
		hits := 0
		for _, b := range breakoutDays {
			diff := util.DaysBetween(started, b)
			if diff >= 0 && diff <= productOnsetWindow {
				hits++
			}
		}
		ratio := float64(hits) / float64(len(breakouts))
		if ratio <= triggerThreshold {
			continue
		}
		name := u.ProductName
		if name == "" {
			name = u.ProductID
		}
		triggers = append(triggers, AcneTrigger{
			Type:           TriggerProduct,
			Factor:         name,
			ProductID:      u.ProductID,
			Correlation:    round1(ratio * 100),
			Confidence:     confidenceFor(ratio),
			Frequency:      round1(ratio * 100),
			Description:    fmt.Sprintf("%d of your %d breakouts started within two weeks of adding %s.", hits, len(breakouts), name),
			Recommendation: fmt.Sprintf("Pause %s for two weeks to see whether breakouts settle.", name),
		})
	}

	sort.SliceStable(triggers, func(i, j int) bool {
		return triggers[i].Correlation > triggers[j].Correlation
	})
	return triggers
}

// severityByJournalDay projects breakouts onto the journal's days: each
// journal day gets the worst severity recorded that day, or 0 when clear.
func severityByJournalDay(entries []JournalEntry, breakouts []BreakoutEvent) []DatedValue {
	worst := make(map[string]int, len(breakouts))
	for _, b := range breakouts {
		key := util.DayKey(b.Date)
		if b.Severity > worst[key] {
			worst[key] = b.Severity
		}
	}
	out := make([]DatedValue, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		key := util.DayKey(e.Date)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, DatedValue{Date: key, Value: float64(worst[key])})
	}
	return out
}

func parsedBreakoutDays(breakouts []BreakoutEvent) []time.Time {
	out := make([]time.Time, 0, len(breakouts))
	for _, b := range breakouts {
		if ts, ok := util.ParseDate(b.Date); ok {
			out = append(out, ts)
		}
	}
	return out
}

// breakoutFrequency is the percentage of matching journal days that have a
// breakout within two days either side, inclusive.
func breakoutFrequency(entries []JournalEntry, breakoutDays []time.Time, match func(JournalEntry) bool) float64 {
	total, hits := 0, 0
	for _, e := range entries {
		if !match(e) {
			continue
		}
		d, ok := util.ParseDate(e.Date)
		if !ok {
			continue
		}
		total++
		for _, b := range breakoutDays {
			diff := util.DaysBetween(d, b)
			if diff >= -breakoutWindowDays && diff <= breakoutWindowDays {
				hits++
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

func confidenceFor(r float64) string {
	if r > highConfidenceR {
		return confidenceHigh
	}
	return confidenceMedium
}
