package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquote/services"
)

// catalogResponse is everything the item picker and schedule editor offer.
type catalogResponse struct {
	Categories           []services.CategoryInfo        `json:"categories"`
	Options              []services.CatalogOption       `json:"options"`
	AccessorySuggestions map[services.Category][]string `json:"accessorySuggestions"`
	PeriodPresets        []services.PeriodPreset        `json:"periodPresets"`
	DayLabels            []string                       `json:"dayLabels"`
}

// HandleCatalog returns categories, catalog options, accessory suggestions,
// period presets and day labels.
func HandleCatalog(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		opts, err := services.ListCatalogOptions(app)
		if err != nil {
			log.Printf("catalog: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to fetch catalog")
		}
		return e.JSON(http.StatusOK, catalogResponse{
			Categories:           services.Categories,
			Options:              opts,
			AccessorySuggestions: services.AccessorySuggestions,
			PeriodPresets:        services.PeriodPresets,
			DayLabels:            services.DayLabels,
		})
	}
}

// HandleCatalogImport validates an uploaded .csv/.xlsx catalog and appends
// its rows. If any row is invalid nothing is imported: the errors come back
// as JSON, or as an xlsx report when ?report=xlsx.
func HandleCatalogImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return jsonError(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateCatalogFile(file, header.Filename)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		if result.ErrorRows > 0 {
			if e.Request.URL.Query().Get("report") == "xlsx" {
				report, err := services.GenerateErrorReport(result.Errors)
				if err != nil {
					log.Printf("catalog_import: failed to build error report: %v", err)
					return jsonError(e, http.StatusInternalServerError, "Failed to build error report")
				}
				e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
				e.Response.Header().Set("Content-Disposition", attachmentHeader("catalog_import_errors.xlsx"))
				e.Response.WriteHeader(http.StatusUnprocessableEntity)
				e.Response.Write(report)
				return nil
			}
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		commit, err := services.CommitCatalogImport(app, result.Options)
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, "Import failed and was rolled back")
		}

		log.Printf("catalog_import: imported %d option(s) from %s", commit.Imported, header.Filename)
		return e.JSON(http.StatusOK, commit)
	}
}
