package models

import "errors"

var (
	// ErrValidation is returned when a requisition is missing required fields
	ErrValidation = errors.New("validation failed")

	// ErrCacheMiss is returned when no permission policy is cached for a role
	ErrCacheMiss = errors.New("permission policy not cached")

	// ErrNotFound is returned when an approval id does not match any queued PR
	ErrNotFound = errors.New("requisition not found")

	// ErrRuleEvaluation is returned when a rule condition cannot be evaluated
	ErrRuleEvaluation = errors.New("rule evaluation failed")
)
