// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"avquote/collections"
	"avquote/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject stores a new default project with the given name and
// returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) services.Project {
	t.Helper()

	p := services.NewProject(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))
	p.Name = name
	p.Client = name + " Client"

	if err := services.SaveProject(app, p); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return p
}

// SeedProjectJSON writes a raw project document straight into the projects
// collection, bypassing normalization. Use it to set up legacy data.
func SeedProjectJSON(t *testing.T, app *pocketbase.PocketBase, projectID, doc string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project_id", projectID)
	record.Set("data", types.JSONRaw(doc))
	record.Set("updated_at", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save raw project: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
