package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/skinsight/internal/domain/products"
	"github.com/yanqian/skinsight/internal/domain/skinhealth"
	"github.com/yanqian/skinsight/internal/domain/weekly"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	skinSvc    skinhealth.Service
	weeklySvc  weekly.Service
	productSvc products.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(skinSvc skinhealth.Service, weeklySvc weekly.Service, productSvc products.Service, logger *slog.Logger) *Handler {
	return &Handler{
		skinSvc:    skinSvc,
		weeklySvc:  weeklySvc,
		productSvc: productSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// serveJSON binds the request body, calls fn and writes its result. Service
// errors are reported under failCode unless their domain code maps elsewhere.
func serveJSON[Req, Resp any](c *gin.Context, failCode string, fn func(context.Context, Req) (Resp, error)) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}
	resp, err := fn(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromServiceError(err, failCode))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BarrierHealth scores the skin barrier from the latest snapshot and history.
func (h *Handler) BarrierHealth(c *gin.Context) {
	serveJSON(c, "barrier_failed", h.skinSvc.BarrierHealth)
}

// TreatmentResponse judges how a product is working.
func (h *Handler) TreatmentResponse(c *gin.Context) {
	serveJSON(c, "treatment_failed", h.skinSvc.TreatmentResponse)
}

// AcneTriggers correlates lifestyle and product usage with breakouts.
func (h *Handler) AcneTriggers(c *gin.Context) {
	serveJSON(c, "triggers_failed", func(ctx context.Context, req skinhealth.TriggerRequest) (gin.H, error) {
		triggers, err := h.skinSvc.AcneTriggers(ctx, req)
		if err != nil {
			return nil, err
		}
		return gin.H{"triggers": triggers}, nil
	})
}

// Lifestyle reports which habits line up with skin changes.
func (h *Handler) Lifestyle(c *gin.Context) {
	serveJSON(c, "lifestyle_failed", func(ctx context.Context, req skinhealth.LifestyleRequest) (gin.H, error) {
		correlations, err := h.skinSvc.Lifestyle(ctx, req)
		if err != nil {
			return nil, err
		}
		return gin.H{"correlations": correlations}, nil
	})
}

// MedicalAlerts flags patterns worth a dermatologist visit.
func (h *Handler) MedicalAlerts(c *gin.Context) {
	serveJSON(c, "alerts_failed", func(ctx context.Context, req skinhealth.AlertRequest) (gin.H, error) {
		alerts, err := h.skinSvc.MedicalAlerts(ctx, req)
		if err != nil {
			return nil, err
		}
		return gin.H{"alerts": alerts}, nil
	})
}

// WeeklySummary aggregates a week of activity with insights.
func (h *Handler) WeeklySummary(c *gin.Context) {
	serveJSON(c, "weekly_summary_failed", h.weeklySvc.Summarize)
}

// Recommendations builds a personalized product routine.
func (h *Handler) Recommendations(c *gin.Context) {
	serveJSON(c, "recommendations_failed", h.productSvc.Recommend)
}

// Match resolves one recommendation against the catalog.
func (h *Handler) Match(c *gin.Context) {
	serveJSON(c, "match_failed", h.productSvc.Match)
}

// Catalog lists catalog products, optionally filtered by category and region.
func (h *Handler) Catalog(c *gin.Context) {
	q := products.CatalogQuery{
		Category: products.Category(c.Query("category")),
		Region:   c.Query("region"),
	}
	items, err := h.productSvc.Catalog(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, fromServiceError(err, "catalog_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items, "count": len(items)})
}

// Health reports liveness and whether the catalog is loaded.
func (h *Handler) Health(c *gin.Context) {
	items, err := h.productSvc.Catalog(c.Request.Context(), products.CatalogQuery{})
	if err != nil {
		h.logger.Warn("health check catalog unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "catalogProducts": len(items)})
}
