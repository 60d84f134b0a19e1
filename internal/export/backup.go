package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitlab.com/thantzin/agencydesk/internal/kvstore"
	"gitlab.com/thantzin/agencydesk/internal/models"
	"gitlab.com/thantzin/agencydesk/internal/repository"
)

// BackupVersion is the format tag stamped into exported backups.
const BackupVersion = "1.0"

// ErrBadFormat is returned when an import payload is missing a required
// collection or carries an invalid theme. Nothing is applied.
var ErrBadFormat = errors.New("export: invalid backup format")

// ErrNoBackup is returned by Restore when no clear-all snapshot exists.
var ErrNoBackup = errors.New("export: no backup snapshot found")

// BackupFilename creates a dated filename such as "backup-2024-01-31.json".
func BackupFilename() string {
	return fmt.Sprintf("backup-%s.json", time.Now().Format("2006-01-02"))
}

// Backup is the full-export document: both collections, the theme, an
// export timestamp and a format version tag.
type Backup struct {
	Customers      []models.Customer     `json:"customers"`
	FinanceEntries []models.FinanceEntry `json:"financeEntries"`
	Theme          models.Theme          `json:"theme,omitempty"`
	ExportDate     time.Time             `json:"exportDate"`
	Version        string                `json:"version"`
}

// snapshot is the rollback document written before destructive operations.
type snapshot struct {
	Customers      []models.Customer     `json:"customers"`
	FinanceEntries []models.FinanceEntry `json:"financeEntries"`
	Theme          models.Theme          `json:"theme"`
	TakenAt        time.Time             `json:"takenAt"`
}

// BackupManager exports, imports, clears and restores the full data set.
type BackupManager struct {
	kv        kvstore.KV
	customers *repository.CustomerRepository
	finance   *repository.FinanceRepository
	settings  *repository.SettingsRepository
}

// NewBackupManager creates a BackupManager over the given store and
// repositories.
func NewBackupManager(
	kv kvstore.KV,
	customers *repository.CustomerRepository,
	finance *repository.FinanceRepository,
	settings *repository.SettingsRepository,
) *BackupManager {
	return &BackupManager{kv: kv, customers: customers, finance: finance, settings: settings}
}

// Export serializes both collections plus the theme into a backup document.
func (m *BackupManager) Export() ([]byte, error) {
	customers, err := m.customers.List()
	if err != nil {
		return nil, err
	}
	entries, err := m.finance.List()
	if err != nil {
		return nil, err
	}
	theme, err := m.settings.Theme()
	if err != nil {
		return nil, err
	}

	backup := Backup{
		Customers:      customers,
		FinanceEntries: entries,
		Theme:          theme,
		ExportDate:     time.Now().UTC(),
		Version:        BackupVersion,
	}
	raw, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return raw, nil
}

// importPayload distinguishes absent fields from empty ones.
type importPayload struct {
	Customers      *[]models.Customer     `json:"customers"`
	FinanceEntries *[]models.FinanceEntry `json:"financeEntries"`
	Theme          *models.Theme          `json:"theme"`
}

// Import validates the payload, snapshots the current data under the
// reserved rollback key, then overwrites both collections. Records are
// applied as stored, identities preserved. An absent theme leaves the
// current theme unchanged; an invalid one fails the whole import before
// anything is written.
func (m *BackupManager) Import(data []byte) error {
	var payload importPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if payload.Customers == nil || payload.FinanceEntries == nil {
		return fmt.Errorf("%w: customers and financeEntries are required", ErrBadFormat)
	}
	if payload.Theme != nil && !payload.Theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", ErrBadFormat, string(*payload.Theme))
	}

	if err := m.takeSnapshot(kvstore.KeyImportBackup); err != nil {
		return err
	}

	if err := m.customers.ReplaceAll(*payload.Customers); err != nil {
		return err
	}
	if err := m.finance.ReplaceAll(*payload.FinanceEntries); err != nil {
		return err
	}
	if payload.Theme != nil {
		if err := m.settings.SetTheme(*payload.Theme); err != nil {
			return err
		}
	}
	return nil
}

// Clear snapshots the current data under the reserved clear key, then
// empties both collections. The theme is kept.
func (m *BackupManager) Clear() error {
	if err := m.takeSnapshot(kvstore.KeyClearBackup); err != nil {
		return err
	}
	if err := m.customers.ReplaceAll(nil); err != nil {
		return err
	}
	return m.finance.ReplaceAll(nil)
}

// Restore re-applies the collections captured by the last Clear.
func (m *BackupManager) Restore() error {
	raw, ok, err := m.kv.Get(kvstore.KeyClearBackup)
	if err != nil {
		return fmt.Errorf("failed to read clear snapshot: %w", err)
	}
	if !ok {
		return ErrNoBackup
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return fmt.Errorf("failed to decode clear snapshot: %w", err)
	}

	if err := m.customers.ReplaceAll(snap.Customers); err != nil {
		return err
	}
	return m.finance.ReplaceAll(snap.FinanceEntries)
}

func (m *BackupManager) takeSnapshot(key string) error {
	customers, err := m.customers.List()
	if err != nil {
		return err
	}
	entries, err := m.finance.List()
	if err != nil {
		return err
	}
	theme, err := m.settings.Theme()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(snapshot{
		Customers:      customers,
		FinanceEntries: entries,
		Theme:          theme,
		TakenAt:        time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := m.kv.Set(key, string(raw)); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}
