package skinhealth

import (
	"fmt"
	"math"
)

const minConfidentDays = 14

// AnalyzeTreatment compares a baseline and current snapshot for a product and
// returns a verdict. Rules are evaluated in priority order, so two or more side
// effects always produce a harmful verdict regardless of score changes.
func AnalyzeTreatment(product ProductRef, baseline, current AnalysisSnapshot, daysUsed int, effects *SideEffects) TreatmentResponse {
	var flags SideEffects
	if effects != nil {
		flags = *effects
	}
	if daysUsed < 0 {
		daysUsed = 0
	}

	changes := ScoreChanges{
		Hydration:  current.Scores.Hydration - baseline.Scores.Hydration,
		Texture:    current.Scores.Texture - baseline.Scores.Texture,
		Brightness: current.Scores.Brightness - baseline.Scores.Brightness,
		Acne:       baseline.Scores.PoreVisibility - current.Scores.PoreVisibility,
	}
	overall := (changes.Hydration + changes.Texture + changes.Brightness - changes.Acne) / 4
	count := flags.Count()

	var verdict Verdict
	switch {
	case count >= 2:
		verdict = VerdictHarmful
	case overall > 10 && count == 0:
		verdict = VerdictExcellent
	case overall > 5 && count == 0:
		verdict = VerdictGood
	case overall < -5 || count > 0:
		verdict = VerdictPoor
	default:
		verdict = VerdictNeutral
	}

	confidence := int(math.Min(100, float64(daysUsed*2)))
	caveat := ""
	if daysUsed < minConfidentDays {
		if confidence > 50 {
			confidence = 50
		}
		caveat = fmt.Sprintf("Only %d days of use so far. Most products need 4-6 weeks before results are reliable.", daysUsed)
	}

	name := product.Name
	if name == "" {
		name = "This product"
	}

	return TreatmentResponse{
		Product:         product,
		DaysUsed:        daysUsed,
		Verdict:         verdict,
		Message:         verdictMessage(verdict, name, overall),
		Changes:         changes,
		OverallChange:   overall,
		Confidence:      confidence,
		SideEffects:     flags,
		SideEffectCount: count,
		Caveat:          caveat,
	}
}

func verdictMessage(v Verdict, name string, overall float64) string {
	switch v {
	case VerdictHarmful:
		return fmt.Sprintf("%s is causing multiple side effects. Stop using it and let your skin recover.", name)
	case VerdictExcellent:
		return fmt.Sprintf("%s is working very well for you, with an average improvement of %.1f points.", name, overall)
	case VerdictGood:
		return fmt.Sprintf("%s is helping, with an average improvement of %.1f points. Keep going.", name, overall)
	case VerdictPoor:
		return fmt.Sprintf("%s does not seem to suit your skin. Consider reducing use or switching products.", name)
	default:
		return fmt.Sprintf("%s has not made a clear difference yet. Give it more time before deciding.", name)
	}
}
