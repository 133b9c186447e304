// Package policy loads the static configuration the service runs against:
// the data-permission policy, the processing rule set, and the fixed
// requisition collection served by the read path.
package policy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/procureflow/pr-service/internal/models"
	"go.uber.org/zap"
)

// Config holds the paths of the static configuration files.
type Config struct {
	PermissionsPath  string
	RulesPath        string
	RequisitionsPath string
}

// Store reads policy, rules and requisition data from static JSON files.
type Store struct {
	cfg    Config
	logger *zap.Logger
}

// NewStore creates a configuration store over the given file paths.
func NewStore(cfg Config, logger *zap.Logger) *Store {
	return &Store{cfg: cfg, logger: logger}
}

// ruleFile is the wire shape of a rule before its condition is parsed.
type ruleFile struct {
	Condition string `json:"condition"`
	Action    string `json:"action"`
	SetStatus string `json:"setStatus,omitempty"`
	Urgency   string `json:"urgency,omitempty"`
}

// LoadPolicy reads the permission policy for the active role.
func (s *Store) LoadPolicy() (*models.PermissionPolicy, error) {
	data, err := os.ReadFile(s.cfg.PermissionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read permissions file: %w", err)
	}

	var policy models.PermissionPolicy
	if err := json.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse permissions file: %w", err)
	}
	if policy.Role == "" {
		return nil, fmt.Errorf("permissions file %s has no role", s.cfg.PermissionsPath)
	}

	s.logger.Info("Loaded permission policy",
		zap.String("role", policy.Role),
		zap.Strings("allowed_plants", policy.AllowedPlants))
	return &policy, nil
}

// LoadRules reads the rule set. Conditions are parsed here, once, so the
// engine never re-tokenizes them per evaluation. A rule with a malformed
// condition is logged and dropped; the rest of the set still loads.
func (s *Store) LoadRules() (models.RuleSet, error) {
	data, err := os.ReadFile(s.cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file struct {
		Rules []ruleFile `json:"rules"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	ruleSet := make(models.RuleSet, 0, len(file.Rules))
	for _, raw := range file.Rules {
		cond, err := ParseCondition(raw.Condition)
		if err != nil {
			s.logger.Warn("Skipping rule with malformed condition",
				zap.String("condition", raw.Condition),
				zap.Error(err))
			continue
		}
		ruleSet = append(ruleSet, models.Rule{
			Condition: cond,
			Action:    raw.Action,
			SetStatus: raw.SetStatus,
			Urgency:   raw.Urgency,
			Raw:       raw.Condition,
		})
	}

	s.logger.Info("Loaded rule set",
		zap.Int("rules", len(ruleSet)),
		zap.Int("skipped", len(file.Rules)-len(ruleSet)))
	return ruleSet, nil
}

// LoadRequisitions reads the fixed requisition collection backing the
// permission-filtered read path.
func (s *Store) LoadRequisitions() ([]models.PurchaseRequisition, error) {
	data, err := os.ReadFile(s.cfg.RequisitionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read requisitions file: %w", err)
	}

	var file struct {
		Requisitions []models.PurchaseRequisition `json:"requisitions"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse requisitions file: %w", err)
	}

	s.logger.Info("Loaded requisition collection", zap.Int("count", len(file.Requisitions)))
	return file.Requisitions, nil
}
