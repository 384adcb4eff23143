package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"avquote/testhelpers"
)

func TestHandleSettings_SaveThenGet(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(`{"company_name":"ACME","valid_days":30}`))
	rec := httptest.NewRecorder()
	if err := HandleSettingsSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec = httptest.NewRecorder()
	if err := HandleSettingsGet(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	settings := decodeBody[map[string]string](t, rec)
	if settings["company_name"] != "ACME" {
		t.Errorf("expected company_name ACME, got %q", settings["company_name"])
	}
	if settings["valid_days"] != "30" {
		t.Errorf("expected valid_days 30, got %q", settings["valid_days"])
	}
}

func TestHandleSettingsSave_InvalidJSON(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(`[1,2`))
	rec := httptest.NewRecorder()
	if err := HandleSettingsSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
