package repository

import (
	"time"

	"gitlab.com/thantzin/agencydesk/internal/kvstore"
	"gitlab.com/thantzin/agencydesk/internal/models"
)

// FinanceRepository handles finance entry record operations.
type FinanceRepository struct {
	base collectionStore[models.FinanceEntry]
}

// NewFinanceRepository creates a new FinanceRepository.
func NewFinanceRepository(kv kvstore.KV) *FinanceRepository {
	return &FinanceRepository{base: collectionStore[models.FinanceEntry]{
		kv:  kv,
		key: kvstore.KeyFinanceEntries,
	}}
}

// List returns all finance entries in insertion order. An unset key yields
// an empty list.
func (r *FinanceRepository) List() ([]models.FinanceEntry, error) {
	return r.base.list()
}

// Add validates the entry, assigns a fresh identity and creation timestamp,
// and appends it to the collection. The record is filled in place.
func (r *FinanceRepository) Add(e *models.FinanceEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return r.base.add(e, newID(), func(rec *models.FinanceEntry, id string, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
	}, func(rec models.FinanceEntry) string { return rec.ID })
}

// Update merges the partial change over the entry with the given id and
// re-validates the merged record before writing; an invalid merge is rejected
// with nothing persisted. A missing id is a silent no-op.
func (r *FinanceRepository) Update(id string, upd models.FinanceEntryUpdate) error {
	return r.base.update(id,
		func(rec models.FinanceEntry) string { return rec.ID },
		func(rec *models.FinanceEntry) error {
			upd.Apply(rec)
			return rec.Validate()
		},
	)
}

// Delete removes the entry with the given id. A missing id is a no-op.
func (r *FinanceRepository) Delete(id string) error {
	return r.base.remove(id, func(rec models.FinanceEntry) string { return rec.ID })
}

// ReplaceAll overwrites the entire collection. Used by backup import and
// clear-all; records are applied as stored, identities preserved.
func (r *FinanceRepository) ReplaceAll(entries []models.FinanceEntry) error {
	return r.base.replaceAll(entries)
}
