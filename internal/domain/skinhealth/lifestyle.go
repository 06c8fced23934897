package skinhealth

import "fmt"

// minLifestyleEntries guards against drawing conclusions from a few days.
const minLifestyleEntries = 7

// ReportLifestyle summarizes sleep, water and stress habits. Factors whose
// average sits in the neutral band produce nothing, so partial output is
// normal. Fewer than seven entries yields an empty list. Sleep and water
// average over every entry; stress needs seven rated entries of its own.
func ReportLifestyle(entries []JournalEntry) []LifestyleCorrelation {
	out := make([]LifestyleCorrelation, 0, 3)
	if len(entries) < minLifestyleEntries {
		return out
	}

	var sleep, water, stress []float64
	for _, e := range entries {
		sleep = append(sleep, e.SleepHours)
		water = append(water, e.WaterIntakeGlasses)
		// Stress is rated 1-5, so zero means the entry skipped it.
		if e.StressLevel > 0 {
			stress = append(stress, float64(e.StressLevel))
		}
	}

	switch avg := mean(sleep); {
	case avg >= 8:
		out = append(out, LifestyleCorrelation{
			Factor:         "sleep",
			Impact:         "positive",
			Strength:       strength(avg >= 9),
			Average:        round1(avg),
			Evidence:       fmt.Sprintf("You average %.1f hours of sleep, which gives your skin time to repair overnight.", avg),
			Recommendation: "Keep protecting your sleep schedule.",
		})
	case avg < 7:
		out = append(out, LifestyleCorrelation{
			Factor:         "sleep",
			Impact:         "negative",
			Strength:       strength(avg < 6),
			Average:        round1(avg),
			Evidence:       fmt.Sprintf("You average only %.1f hours of sleep, below the 7-9 hours skin needs to recover.", avg),
			Recommendation: "Move your bedtime 30 minutes earlier this week.",
			Actionable:     true,
		})
	}

	switch avg := mean(water); {
	case avg >= 8:
		out = append(out, LifestyleCorrelation{
			Factor:         "water",
			Impact:         "positive",
			Strength:       strength(avg >= 10),
			Average:        round1(avg),
			Evidence:       fmt.Sprintf("You drink %.1f glasses of water a day on average, which supports skin hydration.", avg),
			Recommendation: "Keep your water bottle close.",
		})
	case avg < 6:
		out = append(out, LifestyleCorrelation{
			Factor:         "water",
			Impact:         "negative",
			Strength:       strength(avg < 4),
			Average:        round1(avg),
			Evidence:       fmt.Sprintf("You drink %.1f glasses of water a day on average, below the recommended 8.", avg),
			Recommendation: "Add one extra glass of water with each meal.",
			Actionable:     true,
		})
	}

	if len(stress) >= minLifestyleEntries {
		avg := mean(stress)
		switch {
		case avg >= 4:
			out = append(out, LifestyleCorrelation{
				Factor:         "stress",
				Impact:         "negative",
				Strength:       strength(avg >= 4.5),
				Average:        round1(avg),
				Evidence:       fmt.Sprintf("Your average stress level is %.1f out of 5, which can trigger breakouts and dullness.", avg),
				Recommendation: "Schedule 10 minutes a day for something that helps you unwind.",
				Actionable:     true,
			})
		case avg <= 2:
			out = append(out, LifestyleCorrelation{
				Factor:         "stress",
				Impact:         "positive",
				Strength:       strength(avg <= 1.5),
				Average:        round1(avg),
				Evidence:       fmt.Sprintf("Your average stress level is a calm %.1f out of 5.", avg),
				Recommendation: "Whatever you are doing to stay calm is working for your skin.",
			})
		}
	}

	return out
}

func strength(strong bool) string {
	if strong {
		return "strong"
	}
	return "moderate"
}
