// Package repository implements record operations over the key-value store.
//
// Every mutation is a whole-collection read-modify-write, matching the
// store's serialized-sequence contract. A per-repository mutex serializes
// cycles within this process; concurrent writers from another process can
// still lose updates, which is an accepted limitation of the design.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/thantzin/agencydesk/internal/kvstore"
	"gitlab.com/thantzin/agencydesk/internal/models"
)

// ErrDuplicateID is returned when a generated identity already exists in the
// collection. With random 128-bit identities this should never happen; it is
// treated as a hard error rather than silently overwriting a record.
var ErrDuplicateID = errors.New("repository: duplicate record id")

// CustomerRepository handles customer record operations.
type CustomerRepository struct {
	base collectionStore[models.Customer]
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(kv kvstore.KV) *CustomerRepository {
	return &CustomerRepository{base: collectionStore[models.Customer]{
		kv:  kv,
		key: kvstore.KeyCustomers,
	}}
}

// List returns all customers in insertion order. An unset key yields an
// empty list.
func (r *CustomerRepository) List() ([]models.Customer, error) {
	return r.base.list()
}

// Add validates the customer, assigns a fresh identity and creation
// timestamp, and appends it to the collection. The record is filled in place.
func (r *CustomerRepository) Add(c *models.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return r.base.add(c, newID(), func(rec *models.Customer, id string, now time.Time) {
		rec.ID = id
		rec.CreatedAt = now
	}, func(rec models.Customer) string { return rec.ID })
}

// Update merges the partial change over the customer with the given id and
// re-validates the merged record before writing; an invalid merge is rejected
// with nothing persisted. A missing id is a silent no-op.
func (r *CustomerRepository) Update(id string, upd models.CustomerUpdate) error {
	return r.base.update(id,
		func(rec models.Customer) string { return rec.ID },
		func(rec *models.Customer) error {
			upd.Apply(rec)
			return rec.Validate()
		},
	)
}

// Delete removes the customer with the given id. A missing id is a no-op.
func (r *CustomerRepository) Delete(id string) error {
	return r.base.remove(id, func(rec models.Customer) string { return rec.ID })
}

// ReplaceAll overwrites the entire collection. Used by backup import and
// clear-all; records are applied as stored, identities preserved.
func (r *CustomerRepository) ReplaceAll(customers []models.Customer) error {
	return r.base.replaceAll(customers)
}

// newID generates a random 128-bit record identity.
func newID() string {
	return uuid.NewString()
}

// collectionStore holds the shared whole-collection read-modify-write cycle
// for one persisted sequence. mu keeps cycles from interleaving within this
// process.
type collectionStore[T any] struct {
	mu  sync.Mutex
	kv  kvstore.KV
	key string
}

func (s *collectionStore[T]) list() ([]T, error) {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *collectionStore[T]) persist(items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.key, err)
	}
	if err := s.kv.Set(s.key, string(raw)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", s.key, err)
	}
	return nil
}

func (s *collectionStore[T]) add(rec *T, id string, stamp func(*T, string, time.Time), idOf func(T) string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.list()
	if err != nil {
		return err
	}
	for _, it := range items {
		if idOf(it) == id {
			return ErrDuplicateID
		}
	}
	stamp(rec, id, time.Now().UTC())
	items = append(items, *rec)
	return s.persist(items)
}

func (s *collectionStore[T]) update(id string, idOf func(T) string, apply func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.list()
	if err != nil {
		return err
	}
	for i := range items {
		if idOf(items[i]) == id {
			if err := apply(&items[i]); err != nil {
				return err
			}
			return s.persist(items)
		}
	}
	// Absent target: silent no-op, nothing rewritten.
	return nil
}

func (s *collectionStore[T]) remove(id string, idOf func(T) string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.list()
	if err != nil {
		return err
	}
	kept := items[:0]
	removed := false
	for _, it := range items {
		if idOf(it) == id {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return nil
	}
	return s.persist(kept)
}

func (s *collectionStore[T]) replaceAll(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(items)
}
