// Package storage provides the key-value record store backing dersb's
// persisted state. Records are whole serialized values stored under fixed
// keys, mirroring the web-storage substrate the app was built against.
package storage

import (
	"errors"
	"fmt"
)

// Sentinel errors for common storage conditions.
var (
	// ErrNotFound indicates no record exists under the requested key.
	ErrNotFound = errors.New("storage: not found")
	// ErrInvalidInput indicates invalid or malformed input was provided.
	ErrInvalidInput = errors.New("storage: invalid input")
	// ErrStorageCorrupt indicates data corruption was detected.
	ErrStorageCorrupt = errors.New("storage: data corruption detected")
	// ErrLockTimeout indicates a timeout acquiring a file lock.
	ErrLockTimeout = errors.New("storage: lock acquisition timeout")
)

// StorageError wraps storage errors with operation and record context.
// Use errors.As() to extract this error type and get operation details:
//
//	var storErr *storage.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("Failed to %s record %s: %v\n", storErr.Op, storErr.Key, storErr.Err)
//	}
type StorageError struct {
	// Op is the operation that failed ("read", "write", "delete", "lock").
	Op string
	// Key is the record key if applicable.
	Key string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// RecordStore stores whole serialized records under fixed string keys.
// Every Put replaces the record and is durable before the call returns,
// so callers can treat mutations as write-through.
type RecordStore interface {
	// Get unmarshals the record stored under key into v.
	// It returns ErrNotFound (wrapped) if no record exists.
	Get(key string, v any) error

	// Put marshals v and stores it under key, replacing any prior record.
	Put(key string, v any) error

	// Delete removes the record under key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}
