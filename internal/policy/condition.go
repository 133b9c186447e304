package policy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/procureflow/pr-service/internal/models"
)

// conditionOperators is checked in order; the two-character operators come
// first so "<=" never mis-tokenizes as "<".
var conditionOperators = []models.Operator{
	models.OpLessEqual,
	models.OpGreaterEqual,
	models.OpLess,
	models.OpGreater,
}

// ParseCondition parses a condition of the form "<variable> <op> <number>",
// e.g. "totalAmount < 10000". The variable must be totalAmount or
// deliveryDays and exactly one comparison operator must be present.
func ParseCondition(raw string) (models.Condition, error) {
	for _, op := range conditionOperators {
		idx := strings.Index(raw, string(op))
		if idx < 0 {
			continue
		}

		lhs := strings.TrimSpace(raw[:idx])
		rhs := strings.TrimSpace(raw[idx+len(op):])

		variable := models.RuleVariable(lhs)
		if variable != models.VarTotalAmount && variable != models.VarDeliveryDays {
			return models.Condition{}, fmt.Errorf("%w: unknown variable %q in condition %q",
				models.ErrRuleEvaluation, lhs, raw)
		}

		threshold, err := strconv.ParseFloat(rhs, 64)
		if err != nil {
			return models.Condition{}, fmt.Errorf("%w: non-numeric threshold %q in condition %q",
				models.ErrRuleEvaluation, rhs, raw)
		}

		return models.Condition{
			Variable:  variable,
			Operator:  op,
			Threshold: threshold,
		}, nil
	}

	return models.Condition{}, fmt.Errorf("%w: no comparison operator in condition %q",
		models.ErrRuleEvaluation, raw)
}
