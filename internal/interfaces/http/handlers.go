package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/procureflow/pr-service/internal/filter"
	"github.com/procureflow/pr-service/internal/models"
)

// RuleProcessor applies the rule set to a requisition.
type RuleProcessor interface {
	Apply(pr *models.PurchaseRequisition, ruleSet models.RuleSet) error
}

// ApprovalQueue exposes the pending-approval queue.
type ApprovalQueue interface {
	ListPending() []*models.PurchaseRequisition
	Approve(id int64) (*models.PurchaseRequisition, error)
}

// PolicyCache looks up and hot-swaps the cached permission policy.
type PolicyCache interface {
	Lookup(ctx context.Context, role string) (*models.PermissionPolicy, error)
	Refresh(ctx context.Context, policy *models.PermissionPolicy) error
}

// PolicyLoader re-reads the permission policy from static configuration.
type PolicyLoader interface {
	LoadPolicy() (*models.PermissionPolicy, error)
}

// Summarizer produces a short summary of a requisition description.
type Summarizer interface {
	Summarize(ctx context.Context, description string) (string, error)
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	processor    RuleProcessor
	queue        ApprovalQueue
	policyCache  PolicyCache
	policyLoader PolicyLoader
	filterSvc    *filter.Service
	summarizer   Summarizer
	ruleSet      models.RuleSet
	requisitions []models.PurchaseRequisition
	role         string
	logger       *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	processor RuleProcessor,
	queue ApprovalQueue,
	policyCache PolicyCache,
	policyLoader PolicyLoader,
	filterSvc *filter.Service,
	summarizer Summarizer,
	ruleSet models.RuleSet,
	requisitions []models.PurchaseRequisition,
	role string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		processor:    processor,
		queue:        queue,
		policyCache:  policyCache,
		policyLoader: policyLoader,
		filterSvc:    filterSvc,
		summarizer:   summarizer,
		ruleSet:      ruleSet,
		requisitions: requisitions,
		role:         role,
		logger:       logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// SummarizeRequest is the body of POST /summarize
type SummarizeRequest struct {
	Description string `json:"description"`
}

// respondError maps the error taxonomy onto HTTP statuses. Unexpected
// errors are reported generically so internals never leak to callers.
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrCacheMiss):
		h.logger.Error("Permission cache miss", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "permission policy unavailable; refresh permissions and retry",
		})
	default:
		h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "pr-service",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ProcessPR handles POST /api/v1/prs/process. The response is the caller's
// requisition augmented with deliveryDays, status, urgency and, when routed
// to manual approval, an id.
func (h *Handlers) ProcessPR(c *gin.Context) {
	var pr models.PurchaseRequisition
	if err := c.ShouldBindJSON(&pr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.processor.Apply(&pr, h.ruleSet); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pr)
}

// GetPending handles GET /api/v1/approvals/pending
func (h *Handlers) GetPending(c *gin.Context) {
	pending := h.queue.ListPending()
	c.JSON(http.StatusOK, gin.H{
		"count":        len(pending),
		"requisitions": pending,
	})
}

// ApprovePR handles POST /api/v1/approvals/:id/approve
func (h *Handlers) ApprovePR(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approval id"})
		return
	}

	pr, err := h.queue.Approve(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pr)
}

// GetPRs handles GET /api/v1/prs with optional status, minAmount and sortBy
// query parameters. The response carries the audit metadata alongside the
// filtered requisitions.
func (h *Handlers) GetPRs(c *gin.Context) {
	policy, err := h.policyCache.Lookup(c.Request.Context(), h.role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result := h.filterSvc.Filter(h.requisitions, policy, filter.QueryOptions{
		Status:    c.Query("status"),
		MinAmount: c.Query("minAmount"),
		SortBy:    c.Query("sortBy"),
	})

	c.JSON(http.StatusOK, result)
}

// GetPermissions handles GET /api/v1/permissions
func (h *Handlers) GetPermissions(c *gin.Context) {
	policy, err := h.policyCache.Lookup(c.Request.Context(), h.role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, policy)
}

// RefreshPermissions handles POST /api/v1/permissions/refresh. It re-reads
// the policy file and hot-swaps the cached entry.
func (h *Handlers) RefreshPermissions(c *gin.Context) {
	policy, err := h.policyLoader.LoadPolicy()
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.policyCache.Refresh(c.Request.Context(), policy); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "permissions refreshed",
		"policy":  policy,
	})
}

// Summarize handles POST /api/v1/summarize
func (h *Handlers) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.summarizer.Summarize(c.Request.Context(), req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
