package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquote/config"
	"avquote/services"
	"avquote/templates"
)

var errUnknownViewType = errors.New("unknown document type")

// brandingFrom copies the document-facing settings out of cfg.
func brandingFrom(cfg config.Config) services.Branding {
	return services.Branding{
		CompanyName:    cfg.CompanyName,
		CompanyTaxID:   cfg.CompanyTaxID,
		SalesName:      cfg.SalesName,
		SalesPhone:     cfg.SalesPhone,
		QuoteTerms:     cfg.QuoteTerms,
		QuoteValidDays: cfg.QuoteValidDays,
		FontPath:       cfg.FontPath,
		LogoPath:       cfg.LogoPath,
	}
}

// resolveDocument loads a project and composes the requested document.
func resolveDocument(app *pocketbase.PocketBase, projectID, rawType, subcontractID string) (services.DocumentView, error) {
	vt, ok := services.ParseViewType(rawType)
	if !ok {
		return services.DocumentView{}, errUnknownViewType
	}
	p, err := services.GetProject(app, projectID)
	if err != nil {
		return services.DocumentView{}, err
	}
	view, ok := services.ResolveView(p, vt, subcontractID)
	if !ok {
		return services.DocumentView{}, services.ErrSubcontractNotFound
	}
	return view, nil
}

// writeDocumentError maps a resolveDocument failure to a response.
func writeDocumentError(e *core.RequestEvent, component string, err error) error {
	switch {
	case errors.Is(err, errUnknownViewType):
		return jsonError(e, http.StatusBadRequest, "Unknown document type")
	case errors.Is(err, services.ErrProjectNotFound):
		return jsonError(e, http.StatusNotFound, "Project not found")
	case errors.Is(err, services.ErrSubcontractNotFound):
		return jsonError(e, http.StatusNotFound, "Subcontract not found")
	}
	log.Printf("%s: %v", component, err)
	return jsonError(e, http.StatusInternalServerError, "Failed to build document")
}

// HandleDocumentView returns the resolved document as JSON.
func HandleDocumentView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		view, err := resolveDocument(app,
			e.Request.PathValue("id"),
			e.Request.PathValue("type"),
			e.Request.URL.Query().Get("subcontract"),
		)
		if err != nil {
			return writeDocumentError(e, "document_view", err)
		}
		return e.JSON(http.StatusOK, view)
	}
}

// exportTypeParam reads ?type=, defaulting to the quote.
func exportTypeParam(e *core.RequestEvent) string {
	if t := e.Request.URL.Query().Get("type"); t != "" {
		return t
	}
	return string(services.ViewQuote)
}

// attachmentHeader builds a Content-Disposition value that survives
// non-ASCII file names.
func attachmentHeader(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// HandleExportPDF generates and downloads a document as PDF.
func HandleExportPDF(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		view, err := resolveDocument(app,
			e.Request.PathValue("id"),
			exportTypeParam(e),
			e.Request.URL.Query().Get("subcontract"),
		)
		if err != nil {
			return writeDocumentError(e, "export_pdf", err)
		}

		pdfBytes, err := services.GeneratePDF(view, brandingFrom(cfg))
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", attachmentHeader(services.DocumentFileName(view, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleExportExcel generates and downloads a document as xlsx.
func HandleExportExcel(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		view, err := resolveDocument(app,
			e.Request.PathValue("id"),
			exportTypeParam(e),
			e.Request.URL.Query().Get("subcontract"),
		)
		if err != nil {
			return writeDocumentError(e, "export_excel", err)
		}

		xlsxBytes, err := services.GenerateExcel(view, brandingFrom(cfg))
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", attachmentHeader(services.DocumentFileName(view, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandlePrintPreview renders the print-ready HTML page of a document.
func HandlePrintPreview(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		view, err := resolveDocument(app,
			e.Request.PathValue("id"),
			e.Request.PathValue("type"),
			e.Request.URL.Query().Get("subcontract"),
		)
		if err != nil {
			switch {
			case errors.Is(err, errUnknownViewType):
				return e.String(http.StatusBadRequest, "Unknown document type")
			case errors.Is(err, services.ErrProjectNotFound), errors.Is(err, services.ErrSubcontractNotFound):
				return e.String(http.StatusNotFound, "Document not found")
			}
			log.Printf("print_preview: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build document")
		}

		data := templates.PrintPageData{
			View:     view,
			Branding: brandingFrom(cfg),
			LogoURL:  staticLogoURL(cfg.StaticDir),
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.PrintPage(data).Render(e.Request.Context(), e.Response)
	}
}

// staticLogoURL returns the public URL of logo.png when the static dir has one.
func staticLogoURL(staticDir string) string {
	if _, err := os.Stat(filepath.Join(staticDir, "logo.png")); err != nil {
		return ""
	}
	return fmt.Sprintf("/static/%s", "logo.png")
}
