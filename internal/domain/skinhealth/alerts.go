package skinhealth

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yanqian/skinsight/pkg/util"
)

const (
	persistentAcneWindowDays = 90
	persistentAcneCount      = 8
	rapidChangeWindow        = 7 * 24 * time.Hour
	rapidChangePoints        = 20.0
)

var severeReactions = []string{"severe irritation", "allergic reaction"}

// CheckMedicalAlerts applies independent safety rules to the user's history.
// now is the reference instant for the trailing breakout window.
func CheckMedicalAlerts(breakouts []BreakoutEvent, snapshots []AnalysisSnapshot, sideEffects []SideEffectRecord, now time.Time) []MedicalAlert {
	alerts := make([]MedicalAlert, 0, 3)

	if n := recentBreakouts(breakouts, now); n >= persistentAcneCount {
		alerts = append(alerts, MedicalAlert{
			Type:           "persistent_acne",
			Severity:       SeverityHigh,
			Title:          "Persistent acne",
			Message:        fmt.Sprintf("You logged %d breakouts in the last 90 days.", n),
			Recommendation: "Book an appointment with a dermatologist. Prescription treatments may help where over-the-counter products have not.",
		})
	}

	if metric, swing, ok := rapidChange(snapshots); ok {
		alerts = append(alerts, MedicalAlert{
			Type:           "rapid_change",
			Severity:       SeverityMedium,
			Title:          "Rapid skin change",
			Message:        fmt.Sprintf("Your %s score changed by %.0f points within a week.", metric, swing),
			Recommendation: "Check for new products or environmental changes, and see a professional if the change continues.",
		})
	}

	if reaction, ok := severeReaction(sideEffects); ok {
		alerts = append(alerts, MedicalAlert{
			Type:           "severe_reaction",
			Severity:       SeverityHigh,
			Title:          "Severe reaction reported",
			Message:        fmt.Sprintf("You reported %s.", reaction),
			Recommendation: "Stop using the product immediately. Seek medical help if you notice swelling or difficulty breathing.",
		})
	}

	return alerts
}

func recentBreakouts(breakouts []BreakoutEvent, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	count := 0
	for _, b := range breakouts {
		d, ok := util.ParseDate(b.Date)
		if !ok {
			continue
		}
		age := util.DaysBetween(d, today)
		if age >= 0 && age <= persistentAcneWindowDays {
			count++
		}
	}
	return count
}

func rapidChange(snapshots []AnalysisSnapshot) (string, float64, bool) {
	window := rapidChangeWindow.Milliseconds()
	for i := 0; i < len(snapshots); i++ {
		for j := i + 1; j < len(snapshots); j++ {
			a, b := snapshots[i], snapshots[j]
			gap := a.TimestampMs - b.TimestampMs
			if gap < 0 {
				gap = -gap
			}
			if gap > window {
				continue
			}
			if d := math.Abs(a.Scores.Hydration - b.Scores.Hydration); d > rapidChangePoints {
				return "hydration", d, true
			}
			if d := math.Abs(a.Scores.Texture - b.Scores.Texture); d > rapidChangePoints {
				return "texture", d, true
			}
		}
	}
	return "", 0, false
}

func severeReaction(records []SideEffectRecord) (string, bool) {
	for _, r := range records {
		kind := strings.ToLower(strings.TrimSpace(r.Type))
		for _, severe := range severeReactions {
			if strings.Contains(kind, severe) {
				return severe, true
			}
		}
	}
	return "", false
}
