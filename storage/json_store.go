package storage

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	schemaVersion = "1.0"
	lockTimeout   = 5 * time.Second
)

// FileStore implements RecordStore using a single JSON file.
// The file is exclusively locked for the lifetime of the store, and every
// Put rewrites it atomically, so a crash never leaves a torn record.
type FileStore struct {
	path string
	lock *FileLock
	data *storeData
	mu   sync.RWMutex
}

// storeData is the top-level JSON structure.
type storeData struct {
	Version   string                     `json:"version"`
	StoreID   string                     `json:"store_id"`
	UpdatedAt time.Time                  `json:"updated_at"`
	Records   map[string]json.RawMessage `json:"records"`
}

// NewFileStore creates a record store backed by the JSON file at path.
// If the file exists, it is loaded; otherwise an empty store is created
// and assigned a fresh store ID.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		lock: NewFileLock(path),
	}

	if err := s.lock.Lock(lockTimeout); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil {
		s.lock.Unlock()
		return nil, err
	}

	return s, nil
}

// load reads the JSON file into memory. Creates empty data if file doesn't exist.
func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.data = newStoreData()
			// Save immediately to catch permission errors early
			return s.save()
		}
		return &StorageError{Op: "read", Err: err}
	}

	s.data = &storeData{}
	if err := json.Unmarshal(data, s.data); err != nil {
		// A corrupt store file must not make the store unusable. Move the
		// damaged file aside for inspection and start from an empty store.
		log.Printf("storage: %s is corrupt, starting fresh: %v", s.path, err)
		if renameErr := os.Rename(s.path, s.path+".corrupt"); renameErr != nil {
			log.Printf("storage: could not preserve corrupt file: %v", renameErr)
		}
		s.data = newStoreData()
		return s.save()
	}

	if s.data.Records == nil {
		s.data.Records = make(map[string]json.RawMessage)
	}
	if s.data.StoreID == "" {
		s.data.StoreID = uuid.NewString()
	}

	return nil
}

// save persists the data to disk atomically.
func (s *FileStore) save() error {
	s.data.UpdatedAt = time.Now()

	writer, err := NewAtomicWriter(s.path)
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.data); err != nil {
		writer.Abort()
		return &StorageError{Op: "write", Err: err}
	}

	if err := writer.Commit(); err != nil {
		return &StorageError{Op: "write", Err: err}
	}

	return nil
}

// StoreID returns the identifier minted when the store file was first created.
func (s *FileStore) StoreID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.StoreID
}

// Get unmarshals the record stored under key into v.
func (s *FileStore) Get(key string, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, exists := s.data.Records[key]
	if !exists {
		return &StorageError{Op: "read", Key: key, Err: ErrNotFound}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &StorageError{Op: "read", Key: key, Err: ErrStorageCorrupt}
	}
	return nil
}

// Put marshals v and stores it under key, then writes the file through to disk.
func (s *FileStore) Put(key string, v any) error {
	if key == "" {
		return &StorageError{Op: "write", Err: ErrInvalidInput}
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "write", Key: key, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Records[key] = raw
	return s.save()
}

// Delete removes the record under key. Absent keys are a no-op.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data.Records[key]; !exists {
		return nil
	}
	delete(s.data.Records, key)
	return s.save()
}

// Close releases the file lock held by the store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock.Unlock()
}

func newStoreData() *storeData {
	return &storeData{
		Version:   schemaVersion,
		StoreID:   uuid.NewString(),
		UpdatedAt: time.Now(),
		Records:   make(map[string]json.RawMessage),
	}
}
