// Package rules applies the configured condition/action rules to incoming
// purchase requisitions and routes high-value ones into manual approval.
package rules

import (
	"fmt"
	"math"
	"time"

	"github.com/procureflow/pr-service/internal/models"
	"go.uber.org/zap"
)

// dateLayout is the calendar-date wire format for deliveryDate/createdDate.
const dateLayout = "2006-01-02"

// Router receives requisitions that need manual sign-off. It assigns the
// requisition its identifier on enqueue.
type Router interface {
	Enqueue(pr *models.PurchaseRequisition)
}

// Engine evaluates a rule set against a requisition and applies the
// resulting status and urgency mutations.
type Engine struct {
	threshold float64
	router    Router
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine creates a rule engine. Requisitions whose total amount exceeds
// threshold are forced into manual approval regardless of rule outcomes.
func NewEngine(threshold float64, router Router, logger *zap.Logger) *Engine {
	return &Engine{
		threshold: threshold,
		router:    router,
		logger:    logger,
		now:       time.Now,
	}
}

// Apply runs the rule set against pr in declaration order, mutating it in
// place. Later rules overwrite fields set by earlier ones. A rule that fails
// to evaluate is logged and skipped; the rest of the set still runs.
//
// The threshold override runs after the rules and wins over any autoApprove
// outcome; this matches the processing service it replaces.
func (e *Engine) Apply(pr *models.PurchaseRequisition, ruleSet models.RuleSet) error {
	if pr.TotalAmount == nil {
		return fmt.Errorf("%w: totalAmount is required", models.ErrValidation)
	}
	if pr.DeliveryDate == "" {
		return fmt.Errorf("%w: deliveryDate is required", models.ErrValidation)
	}

	days, err := e.deliveryDays(pr)
	if err != nil {
		return err
	}
	pr.DeliveryDays = days

	amount := pr.Amount()
	for _, rule := range ruleSet {
		holds, err := rule.Condition.Eval(amount, days)
		if err != nil {
			e.logger.Warn("Skipping rule that failed to evaluate",
				zap.String("condition", rule.Raw),
				zap.Error(err))
			continue
		}
		if !holds {
			continue
		}

		switch rule.Action {
		case models.ActionAutoApprove:
			pr.Status = rule.SetStatus
		case models.ActionSetUrgency:
			pr.Urgency = rule.Urgency
		default:
			// Unknown action kinds are no-ops.
		}
	}

	if pr.Status == "" {
		pr.Status = models.StatusPending
	}
	if pr.Urgency == "" {
		pr.Urgency = models.UrgencyNormal
	}

	if amount > e.threshold {
		pr.Status = models.StatusManualApproval
		e.router.Enqueue(pr)
		e.logger.Info("Routed requisition to manual approval",
			zap.Int64("id", pr.ID),
			zap.Float64("total_amount", amount))
	}

	return nil
}

// deliveryDays computes the whole days until delivery, rounding any
// fractional remainder upward. The reference point is createdDate when the
// caller supplied one, otherwise the evaluation time. The result is signed;
// a delivery date in the past yields a negative count.
func (e *Engine) deliveryDays(pr *models.PurchaseRequisition) (int, error) {
	delivery, err := time.Parse(dateLayout, pr.DeliveryDate)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid deliveryDate %q", models.ErrValidation, pr.DeliveryDate)
	}

	reference := e.now().UTC()
	if pr.CreatedDate != "" {
		reference, err = time.Parse(dateLayout, pr.CreatedDate)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid createdDate %q", models.ErrValidation, pr.CreatedDate)
		}
	}

	return int(math.Ceil(delivery.Sub(reference).Hours() / 24)), nil
}
