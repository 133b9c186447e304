// Package approval maintains the queue of requisitions awaiting manual
// sign-off and the approve/list operations over it.
package approval

import (
	"fmt"
	"sync"

	"github.com/procureflow/pr-service/internal/models"
	"go.uber.org/zap"
)

// Router routes requisitions into the pending-approval queue and disposes
// of them on approval. Approved requisitions stay in the full queue history;
// only the pending view filters them out.
type Router struct {
	mu     sync.Mutex
	queue  []*models.PurchaseRequisition
	byID   map[int64]*models.PurchaseRequisition
	nextID int64
	logger *zap.Logger
}

// NewRouter creates an empty approval router.
func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		byID:   map[int64]*models.PurchaseRequisition{},
		logger: logger,
	}
}

// Enqueue appends pr to the pending queue, assigning it a fresh identifier
// from a monotonic counter so identifiers are unique for the lifetime of
// the process.
func (r *Router) Enqueue(pr *models.PurchaseRequisition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	pr.ID = r.nextID
	r.queue = append(r.queue, pr)
	r.byID[pr.ID] = pr

	r.logger.Debug("Enqueued requisition for manual approval",
		zap.Int64("id", pr.ID),
		zap.Int("queue_length", len(r.queue)))
}

// ListPending returns the queued requisitions still awaiting sign-off, in
// insertion order.
func (r *Router) ListPending() []*models.PurchaseRequisition {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make([]*models.PurchaseRequisition, 0, len(r.queue))
	for _, pr := range r.queue {
		if pr.Status == models.StatusManualApproval {
			pending = append(pending, pr)
		}
	}
	return pending
}

// All returns the full queue history, approved entries included.
func (r *Router) All() []*models.PurchaseRequisition {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*models.PurchaseRequisition, len(r.queue))
	copy(all, r.queue)
	return all
}

// Approve flips the status of the queued requisition with the given
// identifier to Approved and returns the updated record. No re-validation
// against the rule set occurs here.
func (r *Router) Approve(id int64) (*models.PurchaseRequisition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pr, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: no queued requisition with id %d", models.ErrNotFound, id)
	}

	pr.Status = models.StatusApproved
	r.logger.Info("Requisition approved", zap.Int64("id", id))
	return pr, nil
}
