package services

import (
	"encoding/json"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

// sampleProject has one item per interesting shape: client items in two
// categories, an internal-only item and an item with accessories.
func sampleProject() Project {
	return Project{
		ID:          "abcdef123456",
		Name:        "春酒",
		Client:      "ACME",
		Date:        "2025-03-14",
		Location:    "台北",
		MoveInDate:  "2025-03-14 09:00",
		MoveOutDate: "2025-03-14 18:00",
		Period:      2,
		PeriodCharges: []PeriodCharge{
			{ID: "c1", Label: "進場日", Type: ChargeRate, Value: 0.85},
			{ID: "c2", Label: EventDayLabel, Type: ChargeRate, Value: 1.0},
		},
		Items: []EquipmentItem{
			{ID: "light", Category: CategoryLighting, Name: "染色燈", Quantity: 4, Unit: "顆", Price: 1000, CostPrice: 500, Days: 1, SubItems: []string{}},
			{ID: "mic", Category: CategoryAudio, Name: "無線麥克風", Quantity: 2, Unit: "支", Price: 1500, CostPrice: 800, Days: 1, SubItems: []string{"3號電池 (AA)", "麥架 (長)"}},
			{ID: "crew", Category: CategoryCrew, Name: "內部人力", Quantity: 1, Unit: "人", Price: 3000, CostPrice: 2000, Days: 1, InternalOnly: true, SubItems: []string{}},
		},
		Subcontracts: []Subcontract{
			{ID: "sub1", VendorName: "燈光廠商", ItemIDs: []string{"light", "crew"}},
		},
		TaxRate: 0.05,
	}
}
