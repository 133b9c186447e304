package models

import "fmt"

// RuleVariable names a PR attribute a rule condition may compare against.
type RuleVariable string

const (
	VarTotalAmount  RuleVariable = "totalAmount"
	VarDeliveryDays RuleVariable = "deliveryDays"
)

// Operator is a numeric comparison operator in a rule condition.
type Operator string

const (
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
)

// Rule action kinds. Unknown kinds are no-ops during evaluation.
const (
	ActionAutoApprove = "autoApprove"
	ActionSetUrgency  = "setUrgency"
)

// Condition is a single comparison between a PR attribute and a numeric
// threshold, parsed once at configuration load time.
type Condition struct {
	Variable  RuleVariable
	Operator  Operator
	Threshold float64
}

// Eval evaluates the condition against the given attribute values.
func (c Condition) Eval(totalAmount float64, deliveryDays int) (bool, error) {
	var value float64
	switch c.Variable {
	case VarTotalAmount:
		value = totalAmount
	case VarDeliveryDays:
		value = float64(deliveryDays)
	default:
		return false, fmt.Errorf("%w: unknown variable %q", ErrRuleEvaluation, c.Variable)
	}

	switch c.Operator {
	case OpLess:
		return value < c.Threshold, nil
	case OpGreater:
		return value > c.Threshold, nil
	case OpLessEqual:
		return value <= c.Threshold, nil
	case OpGreaterEqual:
		return value >= c.Threshold, nil
	}
	return false, fmt.Errorf("%w: unknown operator %q", ErrRuleEvaluation, c.Operator)
}

// Rule pairs a condition with the mutation to apply when it holds.
// Raw keeps the original condition text for logging.
type Rule struct {
	Condition Condition
	Action    string
	SetStatus string
	Urgency   string
	Raw       string
}

// RuleSet is an ordered sequence of rules. Later rules overwrite fields set
// by earlier ones; last write wins.
type RuleSet []Rule
