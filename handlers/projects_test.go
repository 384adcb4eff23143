package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"avquote/config"
	"avquote/services"
	"avquote/testhelpers"
)

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHandleProjectList_NewestFirstAndFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Spring Gala")
	testhelpers.CreateTestProject(t, app, "Year End")

	handler := HandleProjectList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/projects?q=gala", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	list := decodeBody[[]services.Project](t, rec)
	if len(list) != 1 || list[0].Name != "Spring Gala" {
		t.Errorf("unexpected filtered list: %+v", list)
	}
}

func TestHandleProjectList_EmptyIsArray(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/projects?q=nothing", nil)
	rec := httptest.NewRecorder()
	if err := HandleProjectList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected [], got %s", body)
	}
}

func TestHandleProjectSave_InsertsAndNormalizes(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	body := `{"id":"p-1","name":"Posted","date":"2025-06-01","period":2,"items":[{"id":"a","category":"video","name":"投影機","quantity":1,"price":5000}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(body))
	rec := httptest.NewRecorder()
	if err := HandleProjectSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	p, err := services.GetProject(app, "p-1")
	if err != nil {
		t.Fatalf("project not stored: %v", err)
	}
	if len(p.PeriodCharges) != 2 {
		t.Errorf("expected 2 migrated charges, got %d", len(p.PeriodCharges))
	}
	if p.Items[0].Category != services.CategoryProjection {
		t.Errorf("expected projection category, got %s", p.Items[0].Category)
	}
	if p.UpdatedAt == 0 {
		t.Error("expected updatedAt to be stamped")
	}
}

func TestHandleProjectSave_BadInput(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"id":`, http.StatusBadRequest},
		{"missing id", `{"name":"x"}`, http.StatusUnprocessableEntity},
		{"bad charge type", `{"id":"x","periodCharges":[{"id":"c","type":"percent","value":1}]}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			if err := HandleProjectSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestHandleProjectNew(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cfg := config.Config{DefaultTaxRate: 0.05}

	req := httptest.NewRequest(http.MethodPost, "/api/projects/new", nil)
	rec := httptest.NewRecorder()
	if err := HandleProjectNew(app, cfg)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	p := decodeBody[services.Project](t, rec)
	if p.Name != services.NewProjectName {
		t.Errorf("expected default name, got %q", p.Name)
	}
	if len(p.PeriodCharges) != 1 || p.PeriodCharges[0].Label != services.EventDayLabel {
		t.Errorf("expected one event-day charge, got %+v", p.PeriodCharges)
	}
	if _, err := services.GetProject(app, p.ID); err != nil {
		t.Errorf("new project not stored: %v", err)
	}
}

func TestHandleProjectGet(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Fetch Me")

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+proj.ID, nil)
	req.SetPathValue("id", proj.ID)
	rec := httptest.NewRecorder()
	if err := HandleProjectGet(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeBody[services.Project](t, rec); got.Name != "Fetch Me" {
		t.Errorf("expected Fetch Me, got %q", got.Name)
	}
}

func TestHandleProjectGet_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	if err := HandleProjectGet(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleProjectDelete_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Delete Me")
	ws := services.NewWorkspace(services.NewRecordPersister(app))

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+proj.ID, nil)
	req.SetPathValue("id", proj.ID)
	rec := httptest.NewRecorder()
	if err := HandleProjectDelete(app, ws)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := services.GetProject(app, proj.ID); err == nil {
		t.Error("expected project to be deleted")
	}
}

func TestHandleProjectDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ws := services.NewWorkspace(services.NewRecordPersister(app))

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	if err := HandleProjectDelete(app, ws)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleProjectSummary(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Summary")

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+proj.ID+"/summary", nil)
	req.SetPathValue("id", proj.ID)
	rec := httptest.NewRecorder()
	if err := HandleProjectSummary(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	s := decodeBody[services.ProjectSummary](t, rec)
	if s.ItemCount != len(proj.Items) {
		t.Errorf("expected %d items, got %d", len(proj.Items), s.ItemCount)
	}
	want := services.BaseSubtotal(proj.Items)
	if s.BaseSubtotal != want || s.PeriodTotal != want {
		t.Errorf("expected base and period total %v, got %+v", want, s)
	}
	if s.PeriodSummary != "1 天 (活動日)" {
		t.Errorf("unexpected period summary %q", s.PeriodSummary)
	}
}
