package repository

import (
	"encoding/json"
	"fmt"

	"gitlab.com/thantzin/agencydesk/internal/kvstore"
	"gitlab.com/thantzin/agencydesk/internal/models"
)

// SettingsRepository handles the scalar preferences of the dashboard.
type SettingsRepository struct {
	kv kvstore.KV
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(kv kvstore.KV) *SettingsRepository {
	return &SettingsRepository{kv: kv}
}

// Theme returns the stored theme preference, defaulting to light when unset
// or unreadable.
func (r *SettingsRepository) Theme() (models.Theme, error) {
	raw, ok, err := r.kv.Get(kvstore.KeyTheme)
	if err != nil {
		return models.ThemeLight, fmt.Errorf("failed to read theme: %w", err)
	}
	if !ok {
		return models.ThemeLight, nil
	}
	var theme models.Theme
	if err := json.Unmarshal([]byte(raw), &theme); err != nil || !theme.Valid() {
		return models.ThemeLight, nil
	}
	return theme, nil
}

// SetTheme stores the theme preference. Unknown values are rejected before
// any write.
func (r *SettingsRepository) SetTheme(theme models.Theme) error {
	if !theme.Valid() {
		return &models.ValidationError{Field: "theme", Reason: "unknown value " + string(theme)}
	}
	raw, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}
	if err := r.kv.Set(kvstore.KeyTheme, string(raw)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}
