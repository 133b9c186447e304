package models

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalKeepsPassthroughFields(t *testing.T) {
	payload := `{
		"totalAmount": 8500,
		"deliveryDate": "2025-07-13",
		"requester": "j.doe",
		"costCenter": "CC-42"
	}`

	var pr PurchaseRequisition
	if err := json.Unmarshal([]byte(payload), &pr); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}

	if pr.Amount() != 8500 {
		t.Errorf("Amount() = %v, want 8500", pr.Amount())
	}
	if pr.DeliveryDate != "2025-07-13" {
		t.Errorf("DeliveryDate = %q, want 2025-07-13", pr.DeliveryDate)
	}
	if len(pr.Extra) != 2 {
		t.Fatalf("Extra has %d keys, want 2", len(pr.Extra))
	}
	if string(pr.Extra["requester"]) != `"j.doe"` {
		t.Errorf("Extra[requester] = %s, want \"j.doe\"", pr.Extra["requester"])
	}
}

func TestMarshalEchoesPassthroughFields(t *testing.T) {
	payload := `{"totalAmount": 8500, "deliveryDate": "2025-07-13", "requester": "j.doe"}`

	var pr PurchaseRequisition
	if err := json.Unmarshal([]byte(payload), &pr); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	pr.Status = StatusApproved
	pr.Urgency = UrgencyNormal
	pr.DeliveryDays = 2

	out, err := json.Marshal(pr)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var round map[string]any
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("round-trip unmarshal failed: %v", err)
	}

	if round["requester"] != "j.doe" {
		t.Errorf("requester = %v, want j.doe", round["requester"])
	}
	if round["status"] != StatusApproved {
		t.Errorf("status = %v, want %q", round["status"], StatusApproved)
	}
	if round["deliveryDays"] != 2.0 {
		t.Errorf("deliveryDays = %v, want 2", round["deliveryDays"])
	}
}

func TestMarshalOmitsDeliveryDaysWithoutDeliveryDate(t *testing.T) {
	total := 40000.0
	pr := PurchaseRequisition{ID: 101, Plant: "PlantA", TotalAmount: &total, Status: StatusPending}

	out, err := json.Marshal(pr)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var round map[string]any
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("round-trip unmarshal failed: %v", err)
	}
	if _, ok := round["deliveryDays"]; ok {
		t.Error("deliveryDays emitted for a record with no delivery date")
	}
}
