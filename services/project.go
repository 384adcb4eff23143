package services

// Category is the fixed equipment classification used for display grouping.
type Category string

const (
	CategoryAudio      Category = "audio"
	CategoryLighting   Category = "lighting"
	CategoryLED        Category = "led"
	CategoryProjection Category = "projection"
	CategoryPower      Category = "power"
	CategoryStage      Category = "stage"
	CategoryCrew       Category = "crew"
	CategoryEffects    Category = "effects"
)

// ChargeType distinguishes percentage-of-base charges from fixed amounts.
type ChargeType string

const (
	ChargeRate  ChargeType = "rate"
	ChargeFixed ChargeType = "fixed"
)

// EquipmentItem is one billable or internal line of a project.
type EquipmentItem struct {
	ID           string   `json:"id" validate:"required"`
	Category     Category `json:"category"`
	Name         string   `json:"name"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit"`
	Price        float64  `json:"price"`
	Note         string   `json:"note"`
	Days         float64  `json:"days"`
	CostPrice    float64  `json:"costPrice"`
	InternalOnly bool     `json:"internalOnly"`
	SubItems     []string `json:"subItems"`
}

// PeriodCharge is one row of a project's multi-day pricing schedule.
// For ChargeRate, Value is a fraction of the base subtotal (1.0 = 100%).
// For ChargeFixed, Value is an absolute currency amount.
type PeriodCharge struct {
	ID    string     `json:"id" validate:"required"`
	Label string     `json:"label"`
	Type  ChargeType `json:"type" validate:"oneof=rate fixed"`
	Value float64    `json:"value"`
}

// Subcontract is a vendor package referencing a subset of project items.
type Subcontract struct {
	ID            string   `json:"id" validate:"required"`
	VendorName    string   `json:"vendorName"`
	VendorTaxID   string   `json:"vendorTaxId"`
	VendorContact string   `json:"vendorContact"`
	VendorPhone   string   `json:"vendorPhone"`
	HandoverTime  string   `json:"handoverTime"`
	ItemIDs       []string `json:"itemIds"`
}

// Project is the aggregate root. It is always replaced wholesale.
type Project struct {
	ID            string          `json:"id" validate:"required"`
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
	Period        int             `json:"period"`
	PeriodCharges []PeriodCharge  `json:"periodCharges" validate:"dive"`
	Items         []EquipmentItem `json:"items" validate:"dive"`
	Subcontracts  []Subcontract   `json:"subcontracts" validate:"dive"`
	TaxRate       float64         `json:"taxRate" validate:"gte=0"`
	UpdatedAt     int64           `json:"updatedAt"`
}

// FindSubcontract returns the subcontract with the given id.
func (p Project) FindSubcontract(id string) (Subcontract, bool) {
	for _, s := range p.Subcontracts {
		if s.ID == id {
			return s, true
		}
	}
	return Subcontract{}, false
}

// Clone returns a deep copy so that snapshots never share slices.
func (p Project) Clone() Project {
	c := p
	c.PeriodCharges = append([]PeriodCharge{}, p.PeriodCharges...)
	c.Items = make([]EquipmentItem, len(p.Items))
	for i, it := range p.Items {
		it.SubItems = append([]string{}, it.SubItems...)
		c.Items[i] = it
	}
	c.Subcontracts = make([]Subcontract, len(p.Subcontracts))
	for i, s := range p.Subcontracts {
		s.ItemIDs = append([]string{}, s.ItemIDs...)
		c.Subcontracts[i] = s
	}
	return c
}
