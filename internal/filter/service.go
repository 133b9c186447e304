// Package filter narrows the requisition collection to what the active
// role's permission policy admits, then applies the caller's ad-hoc query
// filters on top.
package filter

import (
	"sort"
	"strconv"

	"github.com/procureflow/pr-service/internal/models"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by QueryOptions.SortBy. Anything else leaves the
// pipeline order unchanged.
const (
	SortByAmount = "amount"
	SortByPlant  = "plant"
)

// QueryOptions are the caller's optional ad-hoc filters. MinAmount is kept
// as the raw query string; a non-numeric value is ignored, not an error.
type QueryOptions struct {
	Status    string
	MinAmount string
	SortBy    string
}

// AppliedFilters reports the effective filter parameters back to the caller.
type AppliedFilters struct {
	Role          string   `json:"role"`
	AllowedPlants []string `json:"allowedPlants,omitempty"`
	MaxAmount     *float64 `json:"maxAmount,omitempty"`
	Status        string   `json:"status,omitempty"`
	MinAmount     *float64 `json:"minAmount,omitempty"`
	SortBy        string   `json:"sortBy,omitempty"`
}

// Result is a filtered view plus the audit metadata alongside it.
type Result struct {
	Total    int                          `json:"total"`
	Filtered int                          `json:"filtered"`
	Filters  AppliedFilters               `json:"filters"`
	Items    []models.PurchaseRequisition `json:"requisitions"`
}

// Service filters requisition collections by permission policy and query
// options.
type Service struct {
	logger *zap.Logger
}

// NewService creates a filter service.
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Filter runs the pipeline over all requisitions. Each stage strictly
// narrows the previous result; insertion order is preserved unless a sort
// key is given.
func (s *Service) Filter(all []models.PurchaseRequisition, policy *models.PermissionPolicy, opts QueryOptions) Result {
	applied := AppliedFilters{
		Role:          policy.Role,
		AllowedPlants: policy.AllowedPlants,
		MaxAmount:     policy.MaxAmount,
		Status:        opts.Status,
	}

	var minAmount *float64
	if opts.MinAmount != "" {
		if value, err := strconv.ParseFloat(opts.MinAmount, 64); err == nil {
			minAmount = &value
		} else {
			s.logger.Debug("Ignoring non-numeric minAmount", zap.String("min_amount", opts.MinAmount))
		}
	}
	applied.MinAmount = minAmount

	items := make([]models.PurchaseRequisition, 0, len(all))
	for _, pr := range all {
		if !policy.AllowsPlant(pr.Plant) {
			continue
		}
		if !policy.AllowsAmount(pr.Amount()) {
			continue
		}
		if opts.Status != "" && pr.Status != opts.Status {
			continue
		}
		if minAmount != nil && pr.Amount() < *minAmount {
			continue
		}
		items = append(items, pr)
	}

	switch opts.SortBy {
	case SortByAmount:
		applied.SortBy = opts.SortBy
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Amount() < items[j].Amount()
		})
	case SortByPlant:
		applied.SortBy = opts.SortBy
		// A Collator is not safe for concurrent use, so build one per call.
		collator := collate.New(language.English)
		sort.SliceStable(items, func(i, j int) bool {
			return collator.CompareString(items[i].Plant, items[j].Plant) < 0
		})
	}

	return Result{
		Total:    len(all),
		Filtered: len(items),
		Filters:  applied,
		Items:    items,
	}
}
