package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EventDayLabel labels the default 100% period charge.
const EventDayLabel = "活動日"

// maxPeriodDays caps the legacy day count when charges are synthesized from it.
const maxPeriodDays = 366

// legacyCategories maps retired category ids onto the current set.
var legacyCategories = map[string]Category{
	"video":       CategoryProjection,
	"manpower":    CategoryCrew,
	"photography": CategoryProjection,
	"livestream":  CategoryLED,
	"print":       CategoryStage,
}

// storedItem is the loosest item shape ever persisted.
type storedItem struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	Name         string          `json:"name"`
	Quantity     float64         `json:"quantity"`
	Unit         string          `json:"unit"`
	Price        float64         `json:"price"`
	Note         string          `json:"note"`
	Days         *float64        `json:"days"`
	CostPrice    *float64        `json:"costPrice"`
	InternalOnly bool            `json:"internalOnly"`
	SubItems     json.RawMessage `json:"subItems"`
}

// storedProject is the loosest project shape ever persisted. Pointer fields
// distinguish "absent" from "present but empty".
type storedProject struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Client        string          `json:"client"`
	Date          string          `json:"date"`
	ActivityTime  string          `json:"activityTime"`
	Location      string          `json:"location"`
	Contact       string          `json:"contact"`
	Phone         string          `json:"phone"`
	TaxID         string          `json:"taxId"`
	MoveInDate    string          `json:"moveInDate"`
	MoveOutDate   string          `json:"moveOutDate"`
	Period        *float64        `json:"period"`
	PeriodCharges *[]PeriodCharge `json:"periodCharges"`
	Items         []storedItem    `json:"items"`
	Subcontracts  []Subcontract   `json:"subcontracts"`
	TaxRate       float64         `json:"taxRate"`
	UpdatedAt     int64           `json:"updatedAt"`
}

// DecodeProject parses a stored or submitted project document and applies
// the migration rules, so callers only ever see the current shape.
func DecodeProject(data []byte) (Project, error) {
	var raw storedProject
	if err := json.Unmarshal(data, &raw); err != nil {
		return Project{}, fmt.Errorf("decode project: %w", err)
	}
	return normalize(raw), nil
}

// NormalizeJSON decodes, migrates and re-encodes a project document. Running
// it on its own output returns identical bytes.
func NormalizeJSON(data []byte) ([]byte, error) {
	p, err := DecodeProject(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

func normalize(raw storedProject) Project {
	p := Project{
		ID:           raw.ID,
		Name:         raw.Name,
		Client:       raw.Client,
		Date:         raw.Date,
		ActivityTime: raw.ActivityTime,
		Location:     raw.Location,
		Contact:      raw.Contact,
		Phone:        raw.Phone,
		TaxID:        raw.TaxID,
		MoveInDate:   raw.MoveInDate,
		MoveOutDate:  raw.MoveOutDate,
		TaxRate:      raw.TaxRate,
		UpdatedAt:    raw.UpdatedAt,
	}

	if p.MoveInDate == "" {
		p.MoveInDate = p.Date + " 09:00"
	}
	if p.MoveOutDate == "" {
		p.MoveOutDate = p.Date + " 18:00"
	}

	p.Period = 1
	if raw.Period != nil {
		p.Period = periodDays(*raw.Period)
	}
	if raw.PeriodCharges != nil {
		p.PeriodCharges = append([]PeriodCharge{}, (*raw.PeriodCharges)...)
	} else {
		p.PeriodCharges = chargesFromPeriod(p.ID, p.Period)
	}

	p.Subcontracts = make([]Subcontract, 0, len(raw.Subcontracts))
	for _, s := range raw.Subcontracts {
		if s.ItemIDs == nil {
			s.ItemIDs = []string{}
		}
		p.Subcontracts = append(p.Subcontracts, s)
	}

	p.Items = make([]EquipmentItem, 0, len(raw.Items))
	for _, it := range raw.Items {
		p.Items = append(p.Items, normalizeItem(it))
	}
	return p
}

func normalizeItem(raw storedItem) EquipmentItem {
	category := Category(raw.Category)
	if mapped, ok := legacyCategories[raw.Category]; ok {
		category = mapped
	}

	item := EquipmentItem{
		ID:           raw.ID,
		Category:     category,
		Name:         raw.Name,
		Quantity:     raw.Quantity,
		Unit:         raw.Unit,
		Price:        raw.Price,
		Note:         raw.Note,
		Days:         1,
		InternalOnly: raw.InternalOnly,
		SubItems:     decodeSubItems(raw.SubItems),
	}
	if raw.Days != nil {
		item.Days = *raw.Days
	}
	if raw.CostPrice != nil {
		item.CostPrice = *raw.CostPrice
	}
	return item
}

// decodeSubItems accepts a JSON string array or a legacy newline-delimited
// string. Anything else becomes an empty list.
func decodeSubItems(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return list
	}
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil && legacy != "" {
		return strings.Split(legacy, "\n")
	}
	return []string{}
}

// periodDays converts a stored day count to [0, maxPeriodDays].
func periodDays(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= maxPeriodDays:
		return maxPeriodDays
	}
	return int(v)
}

// chargesFromPeriod converts the legacy day count into rate charges. Ids are
// derived from the project id so the migration is deterministic.
func chargesFromPeriod(projectID string, period int) []PeriodCharge {
	charges := make([]PeriodCharge, 0, period)
	for i := 0; i < period; i++ {
		label := EventDayLabel
		if i > 0 {
			label = fmt.Sprintf("第%d天", i+1)
		}
		charges = append(charges, PeriodCharge{
			ID:    migratedChargeID(projectID, i),
			Label: label,
			Type:  ChargeRate,
			Value: 1.0,
		})
	}
	return charges
}

func migratedChargeID(projectID string, index int) string {
	name := fmt.Sprintf("avquote/%s/period/%d", projectID, index)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
