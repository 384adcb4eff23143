package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquote/services"
)

// maxCommandBody bounds one batch of editor commands.
const maxCommandBody = 1 << 20

// HandleProjectCommands applies a JSON list of editor commands to a project.
// The stored copy is opened in the workspace, the commands are applied
// optimistically and persisted; a failed write leaves the project unchanged.
func HandleProjectCommands(app *pocketbase.PocketBase, ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, ok, err := loadProject(app, e)
		if !ok {
			return err
		}

		body, err := io.ReadAll(io.LimitReader(e.Request.Body, maxCommandBody))
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Could not read request body")
		}
		cmds, err := services.DecodeCommands(body)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		ws.Open(p)
		updated, err := ws.Apply(e.Request.Context(), p.ID, cmds...)
		if errors.Is(err, services.ErrInvalidProject) {
			return jsonError(e, http.StatusUnprocessableEntity, err.Error())
		}
		if err != nil {
			log.Printf("project_commands: project %s: %v", p.ID, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to save project")
		}

		log.Printf("project_commands: applied %d command(s) to project %s", len(cmds), p.ID)
		return e.JSON(http.StatusOK, updated)
	}
}
