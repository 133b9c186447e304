package models

import "encoding/json"

// Status values a requisition moves through during processing.
const (
	StatusPending        = "Pending"
	StatusApproved       = "Approved"
	StatusManualApproval = "Manual Approval"
)

// UrgencyNormal is the urgency assigned when no rule overrides it.
const UrgencyNormal = "Normal"

// PurchaseRequisition is the core record flowing through the service.
// TotalAmount is a pointer so a missing field can be told apart from an
// explicit zero. Extra carries caller-supplied fields we do not interpret;
// they are echoed back unchanged in responses.
type PurchaseRequisition struct {
	ID           int64
	Plant        string
	TotalAmount  *float64
	DeliveryDate string
	CreatedDate  string
	DeliveryDays int
	Status       string
	Urgency      string
	Extra        map[string]json.RawMessage
}

// Amount returns the total amount, or zero when the field is absent.
func (pr *PurchaseRequisition) Amount() float64 {
	if pr.TotalAmount == nil {
		return 0
	}
	return *pr.TotalAmount
}

// knownPRFields are the keys handled by the struct itself; everything else
// lands in Extra.
var knownPRFields = map[string]bool{
	"id":           true,
	"plant":        true,
	"totalAmount":  true,
	"deliveryDate": true,
	"createdDate":  true,
	"deliveryDays": true,
	"status":       true,
	"urgency":      true,
}

// prAlias mirrors the wire shape of the known fields.
type prAlias struct {
	ID           int64    `json:"id,omitempty"`
	Plant        string   `json:"plant,omitempty"`
	TotalAmount  *float64 `json:"totalAmount,omitempty"`
	DeliveryDate string   `json:"deliveryDate,omitempty"`
	CreatedDate  string   `json:"createdDate,omitempty"`
	DeliveryDays *int     `json:"deliveryDays,omitempty"`
	Status       string   `json:"status,omitempty"`
	Urgency      string   `json:"urgency,omitempty"`
}

// UnmarshalJSON decodes the known fields and keeps any remaining keys as
// passthrough data.
func (pr *PurchaseRequisition) UnmarshalJSON(data []byte) error {
	var alias prAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pr.ID = alias.ID
	pr.Plant = alias.Plant
	pr.TotalAmount = alias.TotalAmount
	pr.DeliveryDate = alias.DeliveryDate
	pr.CreatedDate = alias.CreatedDate
	pr.Status = alias.Status
	pr.Urgency = alias.Urgency
	if alias.DeliveryDays != nil {
		pr.DeliveryDays = *alias.DeliveryDays
	}

	pr.Extra = nil
	for key, value := range raw {
		if knownPRFields[key] {
			continue
		}
		if pr.Extra == nil {
			pr.Extra = map[string]json.RawMessage{}
		}
		pr.Extra[key] = value
	}
	return nil
}

// MarshalJSON emits the known fields plus the passthrough data. DeliveryDays
// is only emitted once a delivery date is known, so unprocessed records do not
// report a misleading zero.
func (pr PurchaseRequisition) MarshalJSON() ([]byte, error) {
	alias := prAlias{
		ID:           pr.ID,
		Plant:        pr.Plant,
		TotalAmount:  pr.TotalAmount,
		DeliveryDate: pr.DeliveryDate,
		CreatedDate:  pr.CreatedDate,
		Status:       pr.Status,
		Urgency:      pr.Urgency,
	}
	if pr.DeliveryDate != "" {
		days := pr.DeliveryDays
		alias.DeliveryDays = &days
	}

	if len(pr.Extra) == 0 {
		return json.Marshal(alias)
	}

	base, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range pr.Extra {
		if !knownPRFields[key] {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}
