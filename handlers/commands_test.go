package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"

	"avquote/services"
	"avquote/testhelpers"
)

func postCommands(t *testing.T, app *pocketbase.PocketBase, ws *services.Workspace, projectID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+projectID+"/commands", strings.NewReader(body))
	req.SetPathValue("id", projectID)
	rec := httptest.NewRecorder()
	if err := HandleProjectCommands(app, ws)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestHandleProjectCommands_Applies(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Editable")
	ws := services.NewWorkspace(services.NewRecordPersister(app))

	body := `[
		{"type": "set_info", "payload": {"location": "台北世貿"}},
		{"type": "add_item", "payload": {"category": "lighting"}},
		{"type": "apply_preset", "payload": {"label": "2天(進+活)"}}
	]`
	rec := postCommands(t, app, ws, proj.ID, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeBody[services.Project](t, rec)
	if got.Location != "台北世貿" {
		t.Errorf("expected location to be set, got %q", got.Location)
	}
	if len(got.Items) != len(proj.Items)+1 {
		t.Errorf("expected %d items, got %d", len(proj.Items)+1, len(got.Items))
	}
	if len(got.PeriodCharges) != 2 || got.PeriodCharges[0].Value != 0.85 {
		t.Errorf("expected preset charges, got %+v", got.PeriodCharges)
	}

	stored, err := services.GetProject(app, proj.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if stored.Location != "台北世貿" || len(stored.Items) != len(got.Items) {
		t.Errorf("expected the update to be stored, got %+v", stored)
	}
}

func TestHandleProjectCommands_UnknownCommand(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Editable")
	ws := services.NewWorkspace(services.NewRecordPersister(app))

	rec := postCommands(t, app, ws, proj.ID, `[{"type":"explode"}]`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProjectCommands_InvalidResult(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Editable")
	ws := services.NewWorkspace(services.NewRecordPersister(app))

	chargeID := proj.PeriodCharges[0].ID
	rec := postCommands(t, app, ws, proj.ID, `[{"type":"update_charge","payload":{"chargeId":"`+chargeID+`","type":"percent"}}]`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	stored, _ := services.GetProject(app, proj.ID)
	if stored.PeriodCharges[0].Type != services.ChargeRate {
		t.Errorf("expected stored charge to be unchanged, got %s", stored.PeriodCharges[0].Type)
	}
}

func TestHandleProjectCommands_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ws := services.NewWorkspace(services.NewRecordPersister(app))

	rec := postCommands(t, app, ws, "nonexistent", `[]`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
