package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownCommand is returned by DecodeCommand for an unsupported type.
var ErrUnknownCommand = errors.New("unknown command")

// newID generates ids for items, charges and subcontracts created by commands.
var newID = uuid.NewString

// Command is one editor operation. Apply never mutates its argument; it
// returns a new snapshot. Commands that target a missing id return an
// unchanged copy.
type Command interface {
	Apply(p Project) Project
}

// ApplyCommands folds cmds over p in order.
func ApplyCommands(p Project, cmds ...Command) Project {
	next := p.Clone()
	for _, c := range cmds {
		next = c.Apply(next)
	}
	return next
}

// SetInfo updates project header fields. Nil fields are left untouched.
type SetInfo struct {
	Name         *string  `json:"name"`
	Client       *string  `json:"client"`
	Date         *string  `json:"date"`
	ActivityTime *string  `json:"activityTime"`
	Location     *string  `json:"location"`
	Contact      *string  `json:"contact"`
	Phone        *string  `json:"phone"`
	TaxID        *string  `json:"taxId"`
	MoveInDate   *string  `json:"moveInDate"`
	MoveOutDate  *string  `json:"moveOutDate"`
	TaxRate      *float64 `json:"taxRate"`
}

func (c SetInfo) Apply(p Project) Project {
	next := p.Clone()
	setString(&next.Name, c.Name)
	setString(&next.Client, c.Client)
	setString(&next.Date, c.Date)
	setString(&next.ActivityTime, c.ActivityTime)
	setString(&next.Location, c.Location)
	setString(&next.Contact, c.Contact)
	setString(&next.Phone, c.Phone)
	setString(&next.TaxID, c.TaxID)
	setString(&next.MoveInDate, c.MoveInDate)
	setString(&next.MoveOutDate, c.MoveOutDate)
	if c.TaxRate != nil {
		next.TaxRate = *c.TaxRate
	}
	return next
}

// AddItem appends an item as given.
type AddItem struct {
	Item EquipmentItem `json:"item"`
}

func (c AddItem) Apply(p Project) Project {
	next := p.Clone()
	item := c.Item
	item.SubItems = append([]string{}, c.Item.SubItems...)
	next.Items = append(next.Items, item)
	return next
}

// BlankItem is the empty line added from a category's "add empty" action.
func BlankItem(id string, category Category) EquipmentItem {
	return EquipmentItem{
		ID:       id,
		Category: category,
		Quantity: 1,
		Unit:     "式",
		Days:     1,
		SubItems: []string{},
	}
}

// ItemFromCatalog instantiates a catalog option as a new client-facing item.
func ItemFromCatalog(id string, opt CatalogOption) EquipmentItem {
	return EquipmentItem{
		ID:       id,
		Category: opt.Category,
		Name:     opt.Name,
		Quantity: opt.Quantity,
		Unit:     opt.Unit,
		Price:    opt.Price,
		Note:     opt.Note,
		Days:     1,
		SubItems: append([]string{}, opt.SubItems...),
	}
}

// UpdateItem changes fields of one item. Nil fields are left untouched.
type UpdateItem struct {
	ItemID       string    `json:"itemId"`
	Category     *Category `json:"category"`
	Name         *string   `json:"name"`
	Quantity     *float64  `json:"quantity"`
	Unit         *string   `json:"unit"`
	Price        *float64  `json:"price"`
	Note         *string   `json:"note"`
	Days         *float64  `json:"days"`
	CostPrice    *float64  `json:"costPrice"`
	InternalOnly *bool     `json:"internalOnly"`
}

func (c UpdateItem) Apply(p Project) Project {
	next := p.Clone()
	for i := range next.Items {
		item := &next.Items[i]
		if item.ID != c.ItemID {
			continue
		}
		if c.Category != nil {
			item.Category = *c.Category
		}
		setString(&item.Name, c.Name)
		setFloat(&item.Quantity, c.Quantity)
		setString(&item.Unit, c.Unit)
		setFloat(&item.Price, c.Price)
		setString(&item.Note, c.Note)
		setFloat(&item.Days, c.Days)
		setFloat(&item.CostPrice, c.CostPrice)
		if c.InternalOnly != nil {
			item.InternalOnly = *c.InternalOnly
		}
	}
	return next
}

// RemoveItem deletes an item. Subcontract references are left in place.
type RemoveItem struct {
	ItemID string `json:"itemId"`
}

func (c RemoveItem) Apply(p Project) Project {
	next := p.Clone()
	next.Items = slices.DeleteFunc(next.Items, func(it EquipmentItem) bool { return it.ID == c.ItemID })
	return next
}

// AddSubItem appends an accessory label. Blank and duplicate labels are ignored.
type AddSubItem struct {
	ItemID string `json:"itemId"`
	Label  string `json:"label"`
}

func (c AddSubItem) Apply(p Project) Project {
	next := p.Clone()
	if strings.TrimSpace(c.Label) == "" {
		return next
	}
	for i := range next.Items {
		item := &next.Items[i]
		if item.ID == c.ItemID && !slices.Contains(item.SubItems, c.Label) {
			item.SubItems = append(item.SubItems, c.Label)
		}
	}
	return next
}

// RemoveSubItem drops the accessory at Index.
type RemoveSubItem struct {
	ItemID string `json:"itemId"`
	Index  int    `json:"index"`
}

func (c RemoveSubItem) Apply(p Project) Project {
	next := p.Clone()
	for i := range next.Items {
		item := &next.Items[i]
		if item.ID == c.ItemID && c.Index >= 0 && c.Index < len(item.SubItems) {
			item.SubItems = slices.Delete(item.SubItems, c.Index, c.Index+1)
		}
	}
	return next
}

// AddCharge appends a period charge.
type AddCharge struct {
	Charge PeriodCharge `json:"charge"`
}

func (c AddCharge) Apply(p Project) Project {
	next := p.Clone()
	next.PeriodCharges = append(next.PeriodCharges, c.Charge)
	return next
}

// UpdateCharge changes fields of one period charge.
type UpdateCharge struct {
	ChargeID string      `json:"chargeId"`
	Label    *string     `json:"label"`
	Type     *ChargeType `json:"type"`
	Value    *float64    `json:"value"`
}

func (c UpdateCharge) Apply(p Project) Project {
	next := p.Clone()
	for i := range next.PeriodCharges {
		ch := &next.PeriodCharges[i]
		if ch.ID != c.ChargeID {
			continue
		}
		setString(&ch.Label, c.Label)
		if c.Type != nil {
			ch.Type = *c.Type
		}
		setFloat(&ch.Value, c.Value)
	}
	return next
}

// RemoveCharge deletes a period charge.
type RemoveCharge struct {
	ChargeID string `json:"chargeId"`
}

func (c RemoveCharge) Apply(p Project) Project {
	next := p.Clone()
	next.PeriodCharges = slices.DeleteFunc(next.PeriodCharges, func(ch PeriodCharge) bool { return ch.ID == c.ChargeID })
	return next
}

// SetCharges replaces the whole schedule, e.g. from a preset.
type SetCharges struct {
	Charges []PeriodCharge `json:"charges"`
}

func (c SetCharges) Apply(p Project) Project {
	next := p.Clone()
	next.PeriodCharges = append([]PeriodCharge{}, c.Charges...)
	return next
}

// AddSubcontract appends a vendor package.
type AddSubcontract struct {
	Subcontract Subcontract `json:"subcontract"`
}

func (c AddSubcontract) Apply(p Project) Project {
	next := p.Clone()
	sub := c.Subcontract
	sub.ItemIDs = append([]string{}, c.Subcontract.ItemIDs...)
	next.Subcontracts = append(next.Subcontracts, sub)
	return next
}

// UpdateSubcontract changes vendor fields of one subcontract.
type UpdateSubcontract struct {
	SubcontractID string  `json:"subcontractId"`
	VendorName    *string `json:"vendorName"`
	VendorTaxID   *string `json:"vendorTaxId"`
	VendorContact *string `json:"vendorContact"`
	VendorPhone   *string `json:"vendorPhone"`
	HandoverTime  *string `json:"handoverTime"`
}

func (c UpdateSubcontract) Apply(p Project) Project {
	next := p.Clone()
	for i := range next.Subcontracts {
		s := &next.Subcontracts[i]
		if s.ID != c.SubcontractID {
			continue
		}
		setString(&s.VendorName, c.VendorName)
		setString(&s.VendorTaxID, c.VendorTaxID)
		setString(&s.VendorContact, c.VendorContact)
		setString(&s.VendorPhone, c.VendorPhone)
		setString(&s.HandoverTime, c.HandoverTime)
	}
	return next
}

// RemoveSubcontract deletes a subcontract.
type RemoveSubcontract struct {
	SubcontractID string `json:"subcontractId"`
}

func (c RemoveSubcontract) Apply(p Project) Project {
	next := p.Clone()
	next.Subcontracts = slices.DeleteFunc(next.Subcontracts, func(s Subcontract) bool { return s.ID == c.SubcontractID })
	return next
}

// ToggleSubcontractItem adds the item to the subcontract, or removes every
// occurrence of it if already present.
type ToggleSubcontractItem struct {
	SubcontractID string `json:"subcontractId"`
	ItemID        string `json:"itemId"`
}

func (c ToggleSubcontractItem) Apply(p Project) Project {
	next := p.Clone()
	for i := range next.Subcontracts {
		s := &next.Subcontracts[i]
		if s.ID != c.SubcontractID {
			continue
		}
		if slices.Contains(s.ItemIDs, c.ItemID) {
			s.ItemIDs = slices.DeleteFunc(s.ItemIDs, func(id string) bool { return id == c.ItemID })
		} else {
			s.ItemIDs = append(s.ItemIDs, c.ItemID)
		}
	}
	return next
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// commandEnvelope is the wire form: {"type": "...", "payload": {...}}.
type commandEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeCommands parses a JSON array of command envelopes.
func DecodeCommands(data []byte) ([]Command, error) {
	var envelopes []commandEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, fmt.Errorf("decode commands: %w", err)
	}
	cmds := make([]Command, 0, len(envelopes))
	for i, env := range envelopes {
		cmd, err := decodeCommand(env)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func decodeCommand(env commandEnvelope) (Command, error) {
	payload := env.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	switch env.Type {
	case "set_info":
		return decodeInto[SetInfo](payload)
	case "add_item":
		var in struct {
			Category Category `json:"category"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, err
		}
		return AddItem{Item: BlankItem(newID(), in.Category)}, nil
	case "add_catalog_item":
		var opt CatalogOption
		if err := json.Unmarshal(payload, &opt); err != nil {
			return nil, err
		}
		return AddItem{Item: ItemFromCatalog(newID(), opt)}, nil
	case "update_item":
		return decodeInto[UpdateItem](payload)
	case "remove_item":
		return decodeInto[RemoveItem](payload)
	case "add_sub_item":
		return decodeInto[AddSubItem](payload)
	case "remove_sub_item":
		return decodeInto[RemoveSubItem](payload)
	case "add_charge":
		return AddCharge{Charge: PeriodCharge{ID: newID(), Type: ChargeRate, Value: 1.0}}, nil
	case "update_charge":
		return decodeInto[UpdateCharge](payload)
	case "remove_charge":
		return decodeInto[RemoveCharge](payload)
	case "apply_preset":
		var in struct {
			Label string `json:"label"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, err
		}
		preset, ok := FindPeriodPreset(in.Label)
		if !ok {
			return nil, fmt.Errorf("unknown period preset %q", in.Label)
		}
		charges := make([]PeriodCharge, len(preset.Charges))
		for i, ch := range preset.Charges {
			ch.ID = newID()
			charges[i] = ch
		}
		return SetCharges{Charges: charges}, nil
	case "add_subcontract":
		return AddSubcontract{Subcontract: Subcontract{ID: newID(), ItemIDs: []string{}}}, nil
	case "update_subcontract":
		return decodeInto[UpdateSubcontract](payload)
	case "remove_subcontract":
		return decodeInto[RemoveSubcontract](payload)
	case "toggle_subcontract_item":
		return decodeInto[ToggleSubcontractItem](payload)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Type)
}

func decodeInto[T Command](payload json.RawMessage) (Command, error) {
	var cmd T
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}
