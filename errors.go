package dersb

import (
	"github.com/burkiv/dersb/internal/retry"
	"github.com/burkiv/dersb/quizgen"
	"github.com/burkiv/dersb/storage"
	"github.com/burkiv/dersb/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, dersb.ErrPlaylistNotFound) {
//		fmt.Println("playlist does not exist")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var catErr *dersb.CatalogError
//	if errors.As(err, &catErr) {
//		fmt.Printf("%s failed for %s: %v\n", catErr.Op, catErr.ID, catErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// StorageError wraps errors during record store operations.
	StorageError = storage.StorageError
	// CatalogError wraps errors during YouTube catalog operations.
	CatalogError = youtube.CatalogError
	// RetryableError wraps errors that occurred after retries were exhausted.
	RetryableError = retry.RetryableError
	// HTTPError wraps non-success responses from the quiz generation APIs.
	HTTPError = quizgen.HTTPError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrPlaylistNotFound indicates the YouTube playlist does not exist.
	ErrPlaylistNotFound = youtube.ErrPlaylistNotFound
	// ErrQuotaExceeded indicates the YouTube Data API quota was exhausted.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded

	// Storage errors
	// ErrNotFound indicates a record was not found in the store.
	ErrNotFound = storage.ErrNotFound
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = storage.ErrInvalidInput
	// ErrStorageCorrupt indicates data corruption was detected.
	ErrStorageCorrupt = storage.ErrStorageCorrupt
	// ErrLockTimeout indicates a timeout acquiring a file lock.
	ErrLockTimeout = storage.ErrLockTimeout

	// Quiz generation errors
	// ErrMissingAPIKey indicates no Gemini API key was configured.
	ErrMissingAPIKey = quizgen.ErrMissingAPIKey
	// ErrInvalidResponse indicates the model reply could not be parsed.
	ErrInvalidResponse = quizgen.ErrInvalidResponse
)
