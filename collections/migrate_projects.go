package collections

import (
	"bytes"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"avquote/services"
)

// MigrateStoredProjects brings every stored project document up to the
// current shape and rewrites the rows whose JSON changed. Rows that cannot be
// decoded are logged and left untouched. Safe to call on every startup: a
// second run rewrites nothing.
func MigrateStoredProjects(app core.App) (int, error) {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return 0, fmt.Errorf("migrate: could not find projects collection: %w", err)
	}

	records, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return 0, fmt.Errorf("migrate: could not query projects: %w", err)
	}

	rewritten := 0
	for _, rec := range records {
		raw := storedDocument(rec)
		normalized, err := services.NormalizeJSON(raw)
		if err != nil {
			log.Printf("migrate: project %s has an unreadable document: %v\n", rec.GetString("project_id"), err)
			continue
		}
		if bytes.Equal(raw, normalized) {
			continue
		}

		p, err := services.DecodeProject(normalized)
		if err != nil {
			log.Printf("migrate: project %s: %v\n", rec.GetString("project_id"), err)
			continue
		}
		rec.Set("data", types.JSONRaw(normalized))
		rec.Set("name", p.Name)
		rec.Set("client", p.Client)
		rec.Set("date", p.Date)
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to rewrite project %s: %v\n", rec.GetString("project_id"), err)
			continue
		}
		rewritten++
	}

	if rewritten > 0 {
		log.Printf("migrate: normalized %d of %d stored project(s).\n", rewritten, len(records))
	}
	return rewritten, nil
}

func storedDocument(rec *core.Record) []byte {
	if raw, ok := rec.Get("data").(types.JSONRaw); ok {
		return raw
	}
	return []byte(rec.GetString("data"))
}
