package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquote/config"
	"avquote/services"
)

// maxProjectBody matches the size limit of a stored project document.
const maxProjectBody = 50 << 20

// jsonError writes {"error": msg} with the given status.
func jsonError(e *core.RequestEvent, status int, msg string) error {
	return e.JSON(status, map[string]string{"error": msg})
}

// HandleProjectList returns every project, newest first, optionally
// filtered by ?q= on name or client.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projects, err := services.ListProjects(app)
		if err != nil {
			log.Printf("project_list: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to fetch projects")
		}
		projects = services.FilterProjects(projects, e.Request.URL.Query().Get("q"))
		if projects == nil {
			projects = []services.Project{}
		}
		return e.JSON(http.StatusOK, projects)
	}
}

// HandleProjectSave inserts or replaces a full project document.
func HandleProjectSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := io.ReadAll(io.LimitReader(e.Request.Body, maxProjectBody))
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Could not read request body")
		}

		p, err := services.DecodeProject(body)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid project JSON")
		}
		if err := services.ValidateProject(p); err != nil {
			return jsonError(e, http.StatusUnprocessableEntity, err.Error())
		}
		if p.UpdatedAt == 0 {
			p.UpdatedAt = time.Now().UnixMilli()
		}

		if err := services.SaveProject(app, p); err != nil {
			log.Printf("project_save: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to save project")
		}

		log.Printf("project_save: saved project %s (%d items)", p.ID, len(p.Items))
		return e.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}

// HandleProjectNew creates and stores a project populated with defaults.
func HandleProjectNew(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p := services.NewProject(time.Now())
		p.TaxRate = cfg.DefaultTaxRate

		if err := services.SaveProject(app, p); err != nil {
			log.Printf("project_new: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to create project")
		}

		log.Printf("project_new: created project %s", p.ID)
		return e.JSON(http.StatusCreated, p)
	}
}

// HandleProjectGet returns one normalized project.
func HandleProjectGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, ok, err := loadProject(app, e)
		if !ok {
			return err
		}
		return e.JSON(http.StatusOK, p)
	}
}

// HandleProjectDelete removes a project through the workspace so an open
// snapshot is dropped together with the stored row.
func HandleProjectDelete(app *pocketbase.PocketBase, ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return jsonError(e, http.StatusBadRequest, "Missing project ID")
		}

		err := ws.Delete(e.Request.Context(), projectID)
		if errors.Is(err, services.ErrProjectNotFound) {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}
		if err != nil {
			log.Printf("project_delete: failed to delete project %s: %v", projectID, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete project")
		}

		log.Printf("project_delete: deleted project %s", projectID)
		return e.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}

// HandleProjectSummary returns the dashboard card figures for a project.
func HandleProjectSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, ok, err := loadProject(app, e)
		if !ok {
			return err
		}
		return e.JSON(http.StatusOK, services.SummarizeProject(p))
	}
}

// loadProject fetches the project named by the {id} path value. When ok is
// false the error response has already been written and err is what the
// handler should return.
func loadProject(app *pocketbase.PocketBase, e *core.RequestEvent) (p services.Project, ok bool, err error) {
	projectID := e.Request.PathValue("id")
	if projectID == "" {
		return p, false, jsonError(e, http.StatusBadRequest, "Missing project ID")
	}

	p, err = services.GetProject(app, projectID)
	if errors.Is(err, services.ErrProjectNotFound) {
		return p, false, jsonError(e, http.StatusNotFound, "Project not found")
	}
	if err != nil {
		log.Printf("project_load: project %s: %v", projectID, err)
		return p, false, jsonError(e, http.StatusInternalServerError, "Failed to load project")
	}
	return p, true, nil
}
