// Package kvstore provides durable key-value persistence for the dashboard.
//
// Values are UTF-8 JSON documents addressed by fixed string keys. The store
// is single-process; callers serialize their own read-modify-write cycles.
package kvstore

import "errors"

// Persisted keys.
const (
	KeyCustomers      = "customers"
	KeyFinanceEntries = "finance_entries"
	KeyTheme          = "theme_preference"

	// Reserved rollback snapshot keys.
	KeyImportBackup = "backup_before_import"
	KeyClearBackup  = "backup_before_clear"
)

// ErrQuotaExceeded is returned by Set when the serialized store would grow
// past the configured capacity. The store is left untouched.
var ErrQuotaExceeded = errors.New("kvstore: storage quota exceeded")

// KV is the interface repositories depend on. Both the file store and the
// in-memory store implement it, which allows substituting a fake in tests.
type KV interface {
	// Get returns the value stored under key, and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error
	// UsedBytes reports the serialized size of the current document.
	UsedBytes() int64
}

// Ensure implementations satisfy the interface at compile time.
var (
	_ KV = (*FileStore)(nil)
	_ KV = (*MemoryStore)(nil)
)
