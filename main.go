package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"avquote/collections"
	"avquote/config"
	"avquote/handlers"
	"avquote/services"
)

func main() {
	cfg := config.Load()
	app := pocketbase.New()
	ws := services.NewWorkspace(services.NewRecordPersister(app))

	app.RootCmd.AddCommand(normalizeProjectsCmd(app))

	// Create collections, seed the catalog and migrate stored projects on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if _, err := collections.MigrateStoredProjects(app); err != nil {
			log.Printf("Warning: project migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS(cfg.StaticDir), false))

		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/api/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/projects", handlers.HandleProjectSave(app))
		se.Router.POST("/api/projects/new", handlers.HandleProjectNew(app, cfg))
		se.Router.GET("/api/projects/{id}", handlers.HandleProjectGet(app))
		se.Router.DELETE("/api/projects/{id}", handlers.HandleProjectDelete(app, ws))
		se.Router.GET("/api/projects/{id}/summary", handlers.HandleProjectSummary(app))
		se.Router.POST("/api/projects/{id}/commands", handlers.HandleProjectCommands(app, ws))

		// ── Documents ────────────────────────────────────────────
		se.Router.GET("/api/projects/{id}/views/{type}", handlers.HandleDocumentView(app))
		se.Router.GET("/api/projects/{id}/export/pdf", handlers.HandleExportPDF(app, cfg))
		se.Router.GET("/api/projects/{id}/export/excel", handlers.HandleExportExcel(app, cfg))
		se.Router.GET("/projects/{id}/print/{type}", handlers.HandlePrintPreview(app, cfg))

		// ── Settings & catalog ───────────────────────────────────
		se.Router.GET("/api/settings", handlers.HandleSettingsGet(app))
		se.Router.POST("/api/settings", handlers.HandleSettingsSave(app))
		se.Router.GET("/api/catalog", handlers.HandleCatalog(app))
		se.Router.POST("/api/catalog/import", handlers.HandleCatalogImport(app))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/api/projects")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// normalizeProjectsCmd rewrites every stored project into the current
// document shape without starting the server.
func normalizeProjectsCmd(app *pocketbase.PocketBase) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-projects",
		Short: "Migrate stored project documents to the current shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)
			n, err := collections.MigrateStoredProjects(app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "normalized %d project(s)\n", n)
			return nil
		},
	}
}
