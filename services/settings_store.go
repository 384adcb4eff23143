package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// GetSettings returns every stored setting as a key/value map.
func GetSettings(app core.App) (map[string]string, error) {
	records, err := app.FindRecordsByFilter("settings", "id != ''", "key", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	out := make(map[string]string, len(records))
	for _, rec := range records {
		out[rec.GetString("key")] = rec.GetString("value")
	}
	return out, nil
}

// SaveSettings upserts every key in values. Non-string values are stored as
// their JSON encoding. All keys are written in one transaction.
func SaveSettings(app core.App, values map[string]any) error {
	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("settings collection not found: %w", err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		for key, v := range values {
			value, err := settingValue(v)
			if err != nil {
				return fmt.Errorf("setting %q: %w", key, err)
			}

			rec, err := txApp.FindFirstRecordByData(col, "key", key)
			if errors.Is(err, sql.ErrNoRows) {
				rec = core.NewRecord(col)
				rec.Set("key", key)
			} else if err != nil {
				return fmt.Errorf("find setting %q: %w", key, err)
			}
			rec.Set("value", value)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("save setting %q: %w", key, err)
			}
		}
		return nil
	})
}

func settingValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
