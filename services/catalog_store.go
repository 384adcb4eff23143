package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// CatalogImportCommit reports what CommitCatalogImport wrote.
type CatalogImportCommit struct {
	Imported   int  `json:"imported"`
	RolledBack bool `json:"rolled_back"`
}

// ListCatalogOptions returns the equipment catalog in sort order.
func ListCatalogOptions(app core.App) ([]CatalogOption, error) {
	records, err := app.FindRecordsByFilter("equipment_catalog", "id != ''", "sort_order", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("query equipment_catalog: %w", err)
	}

	opts := make([]CatalogOption, 0, len(records))
	for _, rec := range records {
		subItems := []string{}
		if err := rec.UnmarshalJSONField("sub_items", &subItems); err != nil || subItems == nil {
			subItems = []string{}
		}
		opts = append(opts, CatalogOption{
			Category: Category(rec.GetString("category")),
			Name:     rec.GetString("name"),
			Quantity: rec.GetFloat("quantity"),
			Unit:     rec.GetString("unit"),
			Price:    rec.GetFloat("price"),
			Note:     rec.GetString("note"),
			SubItems: subItems,
		})
	}
	return opts, nil
}

// CommitCatalogImport appends opts after the existing catalog rows inside a
// single transaction. Either every option is saved or none is.
func CommitCatalogImport(app core.App, opts []CatalogOption) (*CatalogImportCommit, error) {
	col, err := app.FindCollectionByNameOrId("equipment_catalog")
	if err != nil {
		return nil, fmt.Errorf("equipment_catalog collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "-sort_order", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("query equipment_catalog: %w", err)
	}
	nextOrder := 1
	if len(existing) > 0 {
		nextOrder = existing[0].GetInt("sort_order") + 1
	}

	err = app.RunInTransaction(func(txApp core.App) error {
		for i, opt := range opts {
			subItems := opt.SubItems
			if subItems == nil {
				subItems = []string{}
			}
			rec := core.NewRecord(col)
			rec.Set("sort_order", nextOrder+i)
			rec.Set("category", string(opt.Category))
			rec.Set("name", opt.Name)
			rec.Set("quantity", opt.Quantity)
			rec.Set("unit", opt.Unit)
			rec.Set("price", opt.Price)
			rec.Set("note", opt.Note)
			rec.Set("sub_items", subItems)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("save catalog option %q: %w", opt.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("catalog_import: import rolled back: %v", err)
		return &CatalogImportCommit{RolledBack: true}, err
	}

	return &CatalogImportCommit{Imported: len(opts)}, nil
}
