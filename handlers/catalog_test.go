package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"avquote/collections"
	"avquote/services"
	"avquote/testhelpers"
)

// newUploadRequest builds a multipart POST with one "file" part.
func newUploadRequest(t *testing.T, url, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	if err := HandleCatalog(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeBody[catalogResponse](t, rec)
	if len(resp.Categories) != 8 {
		t.Errorf("expected 8 categories, got %d", len(resp.Categories))
	}
	if len(resp.Options) == 0 {
		t.Error("expected seeded catalog options")
	}
	if len(resp.PeriodPresets) != 3 {
		t.Errorf("expected 3 period presets, got %d", len(resp.PeriodPresets))
	}
	if len(resp.AccessorySuggestions[services.CategoryAudio]) == 0 {
		t.Error("expected audio accessory suggestions")
	}
}

func TestHandleCatalogImport_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	csv := "category,name,quantity,unit,price\naudio,喇叭,2,顆,800\nstage,舞台,1,式,20000\n"
	req := newUploadRequest(t, "/api/catalog/import", "catalog.csv", []byte(csv))
	rec := httptest.NewRecorder()
	if err := HandleCatalogImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	commit := decodeBody[services.CatalogImportCommit](t, rec)
	if commit.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", commit.Imported)
	}

	opts, err := services.ListCatalogOptions(app)
	if err != nil {
		t.Fatalf("ListCatalogOptions: %v", err)
	}
	if len(opts) != 2 {
		t.Errorf("expected 2 stored options, got %d", len(opts))
	}
}

func TestHandleCatalogImport_InvalidRowsImportNothing(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	csv := "category,name,price\naudio,喇叭,800\nkaraoke,,x\n"
	req := newUploadRequest(t, "/api/catalog/import", "catalog.csv", []byte(csv))
	rec := httptest.NewRecorder()
	if err := HandleCatalogImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	result := decodeBody[services.CatalogImportResult](t, rec)
	if result.ErrorRows != 1 || result.ValidRows != 1 {
		t.Errorf("unexpected result %+v", result)
	}

	opts, _ := services.ListCatalogOptions(app)
	if len(opts) != 0 {
		t.Errorf("expected nothing imported, got %d options", len(opts))
	}
}

func TestHandleCatalogImport_ErrorReport(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	csv := "category,name\nkaraoke,\n"
	req := newUploadRequest(t, "/api/catalog/import?report=xlsx", "catalog.csv", []byte(csv))
	rec := httptest.NewRecorder()
	if err := HandleCatalogImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("error report is not a valid xlsx: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("Errors", "A2"); v != "2" {
		t.Errorf("expected row 2 in report, got %q", v)
	}
}

func TestHandleCatalogImport_UnsupportedFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newUploadRequest(t, "/api/catalog/import", "catalog.txt", []byte("hello"))
	rec := httptest.NewRecorder()
	if err := HandleCatalogImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleCatalogImport_MissingFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("other", "value")
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/catalog/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	if err := HandleCatalogImport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
