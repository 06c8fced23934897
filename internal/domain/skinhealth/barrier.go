package skinhealth

import "math"

const (
	neutralRecovery  = 50.0
	stableHydration  = 100.0
	stabilityWindow  = 3
	minStabilityHist = 2
)

var barrierRecommendations = map[BarrierStatus][]string{
	BarrierExcellent: {
		"Your skin barrier is in great shape. Keep your current routine consistent.",
		"Keep wearing broad-spectrum sunscreen every day to protect your progress.",
	},
	BarrierGood: {
		"Your barrier is healthy. A ceramide moisturizer will help keep it that way.",
		"Introduce new actives one at a time so you can spot any reaction early.",
	},
	BarrierCompromised: {
		"Simplify your routine to a gentle cleanser, moisturizer and sunscreen.",
		"Pause strong actives like retinoids and exfoliating acids for one to two weeks.",
		"Apply a ceramide-rich barrier cream morning and night.",
	},
	BarrierDamaged: {
		"Stop all active ingredients until your skin feels comfortable again.",
		"Use only a gentle cleanser, a barrier repair cream and mineral sunscreen.",
		"If stinging or redness lasts more than two weeks, see a dermatologist.",
	},
}

// ScoreBarrier converts the current snapshot and its newest-first history into
// a barrier health score. Missing history falls back to neutral defaults.
func ScoreBarrier(current AnalysisSnapshot, history []AnalysisSnapshot) BarrierHealth {
	scores := current.Scores
	hydration := clampScore(scores.Hydration)

	stability := stableHydration
	if len(history) >= minStabilityHist {
		window := []float64{scores.Hydration}
		for _, snap := range history {
			if len(window) == stabilityWindow {
				break
			}
			window = append(window, snap.Scores.Hydration)
		}
		lo, hi := window[0], window[0]
		for _, v := range window[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		stability = clampScore(100 - (hi - lo))
	}

	sensitivity := clampScore(math.Max(0, 100-stability-scores.Texture))
	irritation := clampScore(math.Max(0, 0.5*(100-scores.PoreVisibility)+0.5*(100-scores.Texture)))

	recovery := neutralRecovery
	if len(history) > 0 {
		recovery = clampScore(math.Max(0, 2*(scores.Hydration-history[0].Scores.Hydration)))
	}

	raw := 0.30*hydration + 0.25*(100-sensitivity) + 0.25*(100-irritation) + 0.20*recovery
	score := int(clampScore(math.Round(raw)))
	status, priority := barrierStatus(score)

	recs := append([]string(nil), barrierRecommendations[status]...)
	if hydration < 60 {
		recs = append(recs, "Boost hydration with humectants such as hyaluronic acid or glycerin on damp skin.")
	}
	if sensitivity > 40 {
		recs = append(recs, "Your skin looks reactive. Patch test new products and avoid fragrance.")
	}

	return BarrierHealth{
		Score:              score,
		Status:             status,
		RepairPriority:     priority,
		Hydration:          round1(hydration),
		HydrationStability: round1(stability),
		Sensitivity:        round1(sensitivity),
		Irritation:         round1(irritation),
		Recovery:           round1(recovery),
		Recommendations:    recs,
	}
}

func barrierStatus(score int) (BarrierStatus, string) {
	switch {
	case score >= 80:
		return BarrierExcellent, "low"
	case score >= 65:
		return BarrierGood, "medium"
	case score >= 50:
		return BarrierCompromised, "high"
	default:
		return BarrierDamaged, "high"
	}
}
