package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestNewFileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	// File should exist after creation
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("store file was not created")
	}

	if store.StoreID() == "" {
		t.Error("store ID was not assigned")
	}
}

func TestFileStore_PutGet(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "test.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	want := testRecord{Name: "tarih", Count: 42}
	if err := store.Put("rec", want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	var got testRecord
	if err := store.Get("rec", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestFileStore_GetMissing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "test.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	var rec testRecord
	err = store.Get("missing", &rec)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}

	var storErr *StorageError
	if !errors.As(err, &storErr) {
		t.Fatalf("Get() error type = %T, want *StorageError", err)
	}
	if storErr.Key != "missing" {
		t.Errorf("StorageError.Key = %q, want %q", storErr.Key, "missing")
	}
}

func TestFileStore_LoadExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := store.Put("rec", testRecord{Name: "kept"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	storeID := store.StoreID()
	store.Close()

	// Reopen and verify both the record and the store ID survive
	store2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() reopen error = %v", err)
	}
	defer store2.Close()

	var got testRecord
	if err := store2.Get("rec", &got); err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Name != "kept" {
		t.Errorf("record name = %q, want %q", got.Name, "kept")
	}
	if store2.StoreID() != storeID {
		t.Errorf("store ID changed across reopen: %q != %q", store2.StoreID(), storeID)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// A corrupt file is discarded, not fatal: the store opens empty.
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	var rec testRecord
	if err := store.Get("rec", &rec); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on recovered store error = %v, want ErrNotFound", err)
	}
	if store.StoreID() == "" {
		t.Error("recovered store has no store ID")
	}

	// The damaged file is preserved next to the store for inspection.
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("corrupt file was not preserved: %v", err)
	}

	// Records written after recovery survive a reopen.
	if err := store.Put("rec", testRecord{Name: "fresh"}); err != nil {
		t.Fatalf("Put() after recovery error = %v", err)
	}
	store.Close()

	store2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() reopen error = %v", err)
	}
	defer store2.Close()
	if err := store2.Get("rec", &rec); err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if rec.Name != "fresh" {
		t.Errorf("record name = %q, want %q", rec.Name, "fresh")
	}
}

func TestFileStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "test.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	if err := store.Put("rec", testRecord{Name: "gone"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Delete("rec"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var rec testRecord
	if err := store.Get("rec", &rec); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting an absent key is a no-op
	if err := store.Delete("rec"); err != nil {
		t.Errorf("Delete() absent key error = %v", err)
	}
}

func TestFileStore_PutEmptyKey(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "test.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	if err := store.Put("", testRecord{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Put() empty key error = %v, want ErrInvalidInput", err)
	}
}
