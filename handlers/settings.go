package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"avquote/services"
)

// HandleSettingsGet returns all stored settings as one object.
func HandleSettingsGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings, err := services.GetSettings(app)
		if err != nil {
			log.Printf("settings: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to fetch settings")
		}
		return e.JSON(http.StatusOK, settings)
	}
}

// HandleSettingsSave upserts every key of the posted object.
func HandleSettingsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var values map[string]any
		if err := json.NewDecoder(e.Request.Body).Decode(&values); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid settings JSON")
		}

		if err := services.SaveSettings(app, values); err != nil {
			log.Printf("settings: failed to save: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to save settings")
		}
		return e.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}
