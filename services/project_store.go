package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

var (
	// ErrProjectNotFound is returned when no stored project has the given id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrSubcontractNotFound is returned when a project has no subcontract with the given id.
	ErrSubcontractNotFound = errors.New("subcontract not found")
)

// NewProjectName is the placeholder name of a freshly created project.
const NewProjectName = "新專案 (New Project)"

// NewProject returns a project populated with the defaults a new quote
// starts from: today's date, one event-day charge and the starter items.
func NewProject(now time.Time) Project {
	today := now.Format("2006-01-02")
	p := Project{
		ID:           newID(),
		Name:         NewProjectName,
		Date:         today,
		ActivityTime: "13:00-17:00",
		MoveInDate:   today + " 09:00",
		MoveOutDate:  today + " 18:00",
		Period:       1,
		PeriodCharges: []PeriodCharge{
			{ID: newID(), Label: EventDayLabel, Type: ChargeRate, Value: 1.0},
		},
		Items:        make([]EquipmentItem, 0, len(initialItems)),
		Subcontracts: []Subcontract{},
		TaxRate:      0.05,
		UpdatedAt:    now.UnixMilli(),
	}
	for _, opt := range initialItems {
		p.Items = append(p.Items, ItemFromCatalog(newID(), opt))
	}
	return p
}

// ListProjects returns every stored project, most recently updated first.
// Rows whose document cannot be decoded are logged and skipped.
func ListProjects(app core.App) ([]Project, error) {
	records, err := app.FindRecordsByFilter("projects", "id != ''", "-updated_at", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}

	projects := make([]Project, 0, len(records))
	for _, rec := range records {
		p, err := DecodeProject(recordDocument(rec))
		if err != nil {
			log.Printf("project_store: skipping project %s: %v", rec.GetString("project_id"), err)
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// GetProject loads one project by id.
func GetProject(app core.App, id string) (Project, error) {
	rec, err := findProjectRecord(app, id)
	if err != nil {
		return Project{}, err
	}
	return DecodeProject(recordDocument(rec))
}

// SaveProject inserts the project or replaces the stored copy with the same id.
func SaveProject(app core.App, p Project) error {
	if p.ID == "" {
		return fmt.Errorf("save project: missing id")
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("save project: encode: %w", err)
	}

	rec, err := findProjectRecord(app, p.ID)
	if errors.Is(err, ErrProjectNotFound) {
		col, colErr := app.FindCollectionByNameOrId("projects")
		if colErr != nil {
			return fmt.Errorf("projects collection not found: %w", colErr)
		}
		rec = core.NewRecord(col)
		rec.Set("project_id", p.ID)
	} else if err != nil {
		return err
	}

	updatedAt := p.UpdatedAt
	if updatedAt == 0 {
		updatedAt = time.Now().UnixMilli()
	}
	rec.Set("name", p.Name)
	rec.Set("client", p.Client)
	rec.Set("date", p.Date)
	rec.Set("data", types.JSONRaw(doc))
	rec.Set("updated_at", updatedAt)

	if err := app.Save(rec); err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	return nil
}

// DeleteProject removes a project and, with it, its subcontracts.
func DeleteProject(app core.App, id string) error {
	rec, err := findProjectRecord(app, id)
	if err != nil {
		return err
	}
	if err := app.Delete(rec); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

func findProjectRecord(app core.App, id string) (*core.Record, error) {
	rec, err := app.FindFirstRecordByData("projects", "project_id", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return rec, nil
}

// recordDocument returns the raw JSON stored in a project record's data field.
func recordDocument(rec *core.Record) []byte {
	if raw, ok := rec.Get("data").(types.JSONRaw); ok {
		return raw
	}
	return []byte(rec.GetString("data"))
}

// FilterProjects keeps the projects whose name or client contains term,
// ignoring case. An empty term keeps everything.
func FilterProjects(projects []Project, term string) []Project {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Client), term) {
			out = append(out, p)
		}
	}
	return out
}

// SubcontractSummary is one vendor line on a project card.
type SubcontractSummary struct {
	ID         string `json:"id"`
	VendorName string `json:"vendorName"`
	ItemCount  int    `json:"itemCount"`
}

// ProjectSummary is the data shown on a dashboard project card.
type ProjectSummary struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Client            string               `json:"client"`
	Date              string               `json:"date"`
	Location          string               `json:"location"`
	BaseSubtotal      float64              `json:"baseSubtotal"`
	PeriodTotal       float64              `json:"periodTotal"`
	ItemCount         int                  `json:"itemCount"`
	InternalItemCount int                  `json:"internalItemCount"`
	ChargeLabels      []string             `json:"chargeLabels"`
	PeriodSummary     string               `json:"periodSummary"`
	Subcontracts      []SubcontractSummary `json:"subcontracts"`
	Margins           []ItemMargin         `json:"margins"`
	UpdatedAt         int64                `json:"updatedAt"`
}

// SummarizeProject computes the dashboard card for p.
func SummarizeProject(p Project) ProjectSummary {
	base := BaseSubtotal(p.Items)
	s := ProjectSummary{
		ID:            p.ID,
		Name:          p.Name,
		Client:        p.Client,
		Date:          p.Date,
		Location:      p.Location,
		BaseSubtotal:  base,
		PeriodTotal:   PeriodSubtotal(base, p.PeriodCharges),
		ItemCount:     len(p.Items),
		ChargeLabels:  make([]string, 0, len(p.PeriodCharges)),
		PeriodSummary: PeriodSummary(p),
		Subcontracts:  make([]SubcontractSummary, 0, len(p.Subcontracts)),
		Margins:       CalcItemMargins(p.Items),
		UpdatedAt:     p.UpdatedAt,
	}
	for _, it := range p.Items {
		if it.InternalOnly {
			s.InternalItemCount++
		}
	}
	for _, c := range p.PeriodCharges {
		s.ChargeLabels = append(s.ChargeLabels, c.Label)
	}
	for _, sub := range p.Subcontracts {
		s.Subcontracts = append(s.Subcontracts, SubcontractSummary{
			ID:         sub.ID,
			VendorName: sub.VendorName,
			ItemCount:  len(SubcontractItems(p, sub)),
		})
	}
	return s
}
