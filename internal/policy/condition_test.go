package policy

import (
	"errors"
	"testing"

	"github.com/procureflow/pr-service/internal/models"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.Condition
		wantErr bool
	}{
		{
			name: "less than",
			raw:  "totalAmount < 10000",
			want: models.Condition{Variable: models.VarTotalAmount, Operator: models.OpLess, Threshold: 10000},
		},
		{
			name: "greater than",
			raw:  "totalAmount > 25000",
			want: models.Condition{Variable: models.VarTotalAmount, Operator: models.OpGreater, Threshold: 25000},
		},
		{
			name: "less or equal does not mis-tokenize as less",
			raw:  "deliveryDays <= 3",
			want: models.Condition{Variable: models.VarDeliveryDays, Operator: models.OpLessEqual, Threshold: 3},
		},
		{
			name: "greater or equal",
			raw:  "deliveryDays >= 7",
			want: models.Condition{Variable: models.VarDeliveryDays, Operator: models.OpGreaterEqual, Threshold: 7},
		},
		{
			name: "no surrounding whitespace",
			raw:  "deliveryDays<3",
			want: models.Condition{Variable: models.VarDeliveryDays, Operator: models.OpLess, Threshold: 3},
		},
		{
			name:    "unknown variable",
			raw:     "vendorScore < 10",
			wantErr: true,
		},
		{
			name:    "non-numeric threshold",
			raw:     "totalAmount < lots",
			wantErr: true,
		},
		{
			name:    "no operator",
			raw:     "totalAmount 10000",
			wantErr: true,
		},
		{
			name:    "empty condition",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCondition(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCondition(%q) expected error, got %+v", tt.raw, got)
				}
				if !errors.Is(err, models.ErrRuleEvaluation) {
					t.Errorf("ParseCondition(%q) error = %v, want ErrRuleEvaluation", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCondition(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseCondition(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
