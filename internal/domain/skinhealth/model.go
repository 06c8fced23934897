package skinhealth

// Scores are the photo-derived sub-scores of one analysis, each 0-100.
type Scores struct {
	Hydration      float64 `json:"hydration"`
	Texture        float64 `json:"texture"`
	Brightness     float64 `json:"brightness"`
	Evenness       float64 `json:"evenness"`
	Elasticity     float64 `json:"elasticity"`
	PoreVisibility float64 `json:"poreVisibility"`
	Jawline        float64 `json:"jawline"`
	Symmetry       float64 `json:"symmetry"`
	Overall        float64 `json:"overall"`
}

// AnalysisSnapshot is one skin analysis at a point in time. History slices are
// ordered newest first.
type AnalysisSnapshot struct {
	TimestampMs  int64    `json:"timestampMs"`
	Scores       Scores   `json:"scores"`
	SkinType     string   `json:"skinType"`
	SkinConcerns []string `json:"skinConcerns"`
}

// Mood is the self-reported mood of a journal day.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodBad   Mood = "bad"
)

// JournalEntry is a daily lifestyle log. Duplicated dates are tolerated.
type JournalEntry struct {
	Date               string  `json:"date"`
	SleepHours         float64 `json:"sleepHours"`
	WaterIntakeGlasses float64 `json:"waterIntakeGlasses"`
	StressLevel        int     `json:"stressLevel"`
	Mood               Mood    `json:"mood"`
}

// BreakoutEvent records an acne flare.
type BreakoutEvent struct {
	Date     string `json:"date"`
	Severity int    `json:"severity"`
	Location string `json:"location"`
}

// ProductUsageRecord marks when the user started a product.
type ProductUsageRecord struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	DateStarted string `json:"dateStarted"`
}

// SideEffectRecord is a reported reaction to a product.
type SideEffectRecord struct {
	ProductID string `json:"productId"`
	Date      string `json:"date"`
	Type      string `json:"type"`
}

// DatedValue is one point of a daily series.
type DatedValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// BarrierStatus buckets the barrier score.
type BarrierStatus string

const (
	BarrierExcellent   BarrierStatus = "excellent"
	BarrierGood        BarrierStatus = "good"
	BarrierCompromised BarrierStatus = "compromised"
	BarrierDamaged     BarrierStatus = "damaged"
)

// BarrierHealth is the barrier scorer output.
type BarrierHealth struct {
	Score              int           `json:"score"`
	Status             BarrierStatus `json:"status"`
	RepairPriority     string        `json:"repairPriority"`
	Hydration          float64       `json:"hydration"`
	HydrationStability float64       `json:"hydrationStability"`
	Sensitivity        float64       `json:"sensitivity"`
	Irritation         float64       `json:"irritation"`
	Recovery           float64       `json:"recovery"`
	Recommendations    []string      `json:"recommendations"`
}

// Verdict is the categorical judgment of a product's effect.
type Verdict string

const (
	VerdictExcellent Verdict = "excellent"
	VerdictGood      Verdict = "good"
	VerdictNeutral   Verdict = "neutral"
	VerdictPoor      Verdict = "poor"
	VerdictHarmful   Verdict = "harmful"
)

// ProductRef identifies the product under evaluation.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SideEffects are the optional reaction flags reported for a treatment.
type SideEffects struct {
	Irritation bool `json:"irritation"`
	Breakouts  bool `json:"breakouts"`
	Dryness    bool `json:"dryness"`
	Redness    bool `json:"redness"`
}

// Count returns the number of reported reactions.
func (s SideEffects) Count() int {
	n := 0
	for _, flag := range []bool{s.Irritation, s.Breakouts, s.Dryness, s.Redness} {
		if flag {
			n++
		}
	}
	return n
}

// ScoreChanges are per-metric deltas between baseline and current.
type ScoreChanges struct {
	Hydration  float64 `json:"hydration"`
	Texture    float64 `json:"texture"`
	Brightness float64 `json:"brightness"`
	Acne       float64 `json:"acne"`
}

// TreatmentResponse is the verdict for one product.
type TreatmentResponse struct {
	Product         ProductRef   `json:"product"`
	DaysUsed        int          `json:"daysUsed"`
	Verdict         Verdict      `json:"verdict"`
	Message         string       `json:"message"`
	Changes         ScoreChanges `json:"changes"`
	OverallChange   float64      `json:"overallChange"`
	Confidence      int          `json:"confidence"`
	SideEffects     SideEffects  `json:"sideEffects"`
	SideEffectCount int          `json:"sideEffectCount"`
	Caveat          string       `json:"caveat,omitempty"`
}

// TriggerType names the kind of acne trigger.
type TriggerType string

const (
	TriggerStress  TriggerType = "stress"
	TriggerSleep   TriggerType = "sleep"
	TriggerProduct TriggerType = "product"
)

// AcneTrigger is a factor statistically associated with breakouts.
type AcneTrigger struct {
	Type           TriggerType `json:"type"`
	Factor         string      `json:"factor"`
	ProductID      string      `json:"productId,omitempty"`
	Correlation    float64     `json:"correlation"`
	Confidence     string      `json:"confidence"`
	Frequency      float64     `json:"frequency"`
	Description    string      `json:"description"`
	Recommendation string      `json:"recommendation"`
}

// LifestyleCorrelation summarizes one lifestyle factor.
type LifestyleCorrelation struct {
	Factor         string  `json:"factor"`
	Impact         string  `json:"impact"`
	Strength       string  `json:"strength"`
	Average        float64 `json:"average"`
	Evidence       string  `json:"evidence"`
	Recommendation string  `json:"recommendation"`
	Actionable     bool    `json:"actionable"`
}

// AlertSeverity ranks medical alerts.
type AlertSeverity string

const (
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// MedicalAlert suggests professional follow-up.
type MedicalAlert struct {
	Type           string        `json:"type"`
	Severity       AlertSeverity `json:"severity"`
	Title          string        `json:"title"`
	Message        string        `json:"message"`
	Recommendation string        `json:"recommendation"`
}
