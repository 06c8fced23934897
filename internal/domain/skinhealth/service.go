package skinhealth

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	apperrors "github.com/yanqian/skinsight/pkg/errors"
	"github.com/yanqian/skinsight/pkg/util"
)

// BarrierRequest asks for a barrier health score.
type BarrierRequest struct {
	Current *AnalysisSnapshot  `json:"current"`
	History []AnalysisSnapshot `json:"history"`
}

// TreatmentRequest asks for a product verdict.
type TreatmentRequest struct {
	Product     ProductRef        `json:"product"`
	Baseline    *AnalysisSnapshot `json:"baseline"`
	Current     *AnalysisSnapshot `json:"current"`
	DaysUsed    int               `json:"daysUsed"`
	SideEffects *SideEffects      `json:"sideEffects,omitempty"`
}

// TriggerRequest carries the logs used for trigger detection.
type TriggerRequest struct {
	Journal      []JournalEntry       `json:"journal"`
	Breakouts    []BreakoutEvent      `json:"breakouts"`
	ProductUsage []ProductUsageRecord `json:"productUsage"`
}

// LifestyleRequest carries journal entries.
type LifestyleRequest struct {
	Journal []JournalEntry `json:"journal"`
}

// AlertRequest carries the history checked by the medical rules. Now is an
// optional YYYY-MM-DD or RFC3339 reference; it defaults to the current time.
type AlertRequest struct {
	Breakouts   []BreakoutEvent    `json:"breakouts"`
	Snapshots   []AnalysisSnapshot `json:"snapshots"`
	SideEffects []SideEffectRecord `json:"sideEffects"`
	Now         string             `json:"now,omitempty"`
}

// Service exposes the skin analytics engine to transports.
type Service interface {
	BarrierHealth(ctx context.Context, req BarrierRequest) (BarrierHealth, error)
	TreatmentResponse(ctx context.Context, req TreatmentRequest) (TreatmentResponse, error)
	AcneTriggers(ctx context.Context, req TriggerRequest) ([]AcneTrigger, error)
	Lifestyle(ctx context.Context, req LifestyleRequest) ([]LifestyleCorrelation, error)
	MedicalAlerts(ctx context.Context, req AlertRequest) ([]MedicalAlert, error)
}

type service struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the analytics facade.
func NewService(logger *slog.Logger) Service {
	return &service{
		logger: logger.With("component", "skinhealth.service"),
		now:    util.NowUTC,
	}
}

func (s *service) BarrierHealth(_ context.Context, req BarrierRequest) (BarrierHealth, error) {
	if req.Current == nil {
		return BarrierHealth{}, apperrors.Wrap(apperrors.CodeInvalidInput, "current snapshot is required", nil)
	}
	result := ScoreBarrier(*req.Current, newestFirst(req.History))
	s.logger.Debug("barrier health scored", "score", result.Score, "status", result.Status, "history", len(req.History))
	return result, nil
}

func (s *service) TreatmentResponse(_ context.Context, req TreatmentRequest) (TreatmentResponse, error) {
	if req.Baseline == nil || req.Current == nil {
		return TreatmentResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "baseline and current snapshots are required", nil)
	}
	result := AnalyzeTreatment(req.Product, *req.Baseline, *req.Current, req.DaysUsed, req.SideEffects)
	s.logger.Debug("treatment response analyzed", "product", req.Product.ID, "verdict", result.Verdict, "confidence", result.Confidence)
	return result, nil
}

func (s *service) AcneTriggers(_ context.Context, req TriggerRequest) ([]AcneTrigger, error) {
	triggers := FindAcneTriggers(req.Journal, req.Breakouts, req.ProductUsage)
	s.logger.Debug("acne triggers evaluated", "journal", len(req.Journal), "breakouts", len(req.Breakouts), "triggers", len(triggers))
	return triggers, nil
}

func (s *service) Lifestyle(_ context.Context, req LifestyleRequest) ([]LifestyleCorrelation, error) {
	return ReportLifestyle(req.Journal), nil
}

func (s *service) MedicalAlerts(_ context.Context, req AlertRequest) ([]MedicalAlert, error) {
	now, err := s.resolveNow(req.Now)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "now must be YYYY-MM-DD or RFC3339", err)
	}
	alerts := CheckMedicalAlerts(req.Breakouts, req.Snapshots, req.SideEffects, now)
	if len(alerts) > 0 {
		s.logger.Info("medical alerts raised", "count", len(alerts))
	}
	return alerts, nil
}

func (s *service) resolveNow(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return s.now(), nil
	}
	return util.ParseReference(trimmed)
}

func newestFirst(history []AnalysisSnapshot) []AnalysisSnapshot {
	out := append([]AnalysisSnapshot(nil), history...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimestampMs > out[j].TimestampMs
	})
	return out
}
