// Package youtube provides the playlist catalog client used by ingestion.
// It wraps the YouTube Data API v3 behind a small interface so the
// ingestion pipeline can be exercised without network access.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/burkiv/dersb/internal/retry"
)

// Sentinel errors for catalog operations.
var (
	// ErrPlaylistNotFound indicates the playlist does not exist or is private.
	ErrPlaylistNotFound = errors.New("youtube: playlist not found")
	// ErrQuotaExceeded indicates the API quota is exhausted.
	ErrQuotaExceeded = errors.New("youtube: api quota exceeded")
)

// CatalogError wraps errors from catalog operations with context.
type CatalogError struct {
	// Op is the operation that failed ("list", "durations").
	Op string
	// ID is the playlist or video-batch identifier.
	ID string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the catalog error.
func (e *CatalogError) Error() string {
	return fmt.Sprintf("youtube: %s %s: %v", e.Op, e.ID, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *CatalogError) Unwrap() error { return e.Err }

// PlaylistItem is one raw video record as listed in a playlist.
type PlaylistItem struct {
	// VideoID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	VideoID string
	// Title is the video title as published.
	Title string
	// Thumbnail is the preferred thumbnail URL, possibly empty.
	Thumbnail string
	// Position is the video's display position within the playlist.
	Position int64
}

// Catalog lists playlist contents and video metadata from an external
// video catalog service.
type Catalog interface {
	// PlaylistItems fetches all items of a playlist in display order,
	// following pagination to the end.
	PlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error)

	// VideoDurations fetches the durations of the given videos, batching
	// requests as the backend requires. IDs without metadata are omitted
	// from the result.
	VideoDurations(ctx context.Context, videoIDs []string) (map[string]Duration, error)
}

// maxBatchSize is the Data API limit for both page size and id batches.
const maxBatchSize = 50

// APICatalog implements Catalog using YouTube Data API v3.
type APICatalog struct {
	service *youtube.Service

	// RetryConfig controls per-request retry behavior.
	RetryConfig retry.Config
}

// NewAPICatalog creates a Data API v3 catalog client authenticated with
// an API key.
func NewAPICatalog(ctx context.Context, apiKey string) (*APICatalog, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: api key required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &APICatalog{
		service:     service,
		RetryConfig: retry.DefaultConfig(),
	}, nil
}

// PlaylistItems fetches every item of the playlist, one page at a time.
func (a *APICatalog) PlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	var items []PlaylistItem
	pageToken := ""
	page := 0

	for {
		var resp *youtube.PlaylistItemListResponse
		err := retry.Do(ctx, a.RetryConfig, isTransientAPIError, func(ctx context.Context) error {
			call := a.service.PlaylistItems.
				List([]string{"snippet", "contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(maxBatchSize).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}

			var callErr error
			resp, callErr = call.Do()
			return callErr
		})
		if err != nil {
			return nil, &CatalogError{Op: "list", ID: playlistID, Err: mapAPIError(err)}
		}

		for _, item := range resp.Items {
			if item.Snippet == nil {
				continue
			}
			videoID := ""
			if item.ContentDetails != nil {
				videoID = item.ContentDetails.VideoId
			}
			items = append(items, PlaylistItem{
				VideoID:   videoID,
				Title:     item.Snippet.Title,
				Thumbnail: thumbnailURL(item.Snippet.Thumbnails),
				Position:  item.Snippet.Position,
			})
		}

		page++
		log.Printf("youtube: page %d fetched (%d items)", page, len(items))

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return items, nil
		}
	}
}

// VideoDurations fetches content details for the given video IDs in
// batches of 50.
func (a *APICatalog) VideoDurations(ctx context.Context, videoIDs []string) (map[string]Duration, error) {
	durations := make(map[string]Duration, len(videoIDs))

	for start := 0; start < len(videoIDs); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batch := videoIDs[start:end]

		var resp *youtube.VideoListResponse
		err := retry.Do(ctx, a.RetryConfig, isTransientAPIError, func(ctx context.Context) error {
			var callErr error
			resp, callErr = a.service.Videos.
				List([]string{"contentDetails"}).
				Id(batch...).
				Context(ctx).
				Do()
			return callErr
		})
		if err != nil {
			return nil, &CatalogError{Op: "durations", ID: batch[0], Err: mapAPIError(err)}
		}

		for _, item := range resp.Items {
			if item.ContentDetails == nil {
				continue
			}
			durations[item.Id] = ParseISODuration(item.ContentDetails.Duration)
		}

		log.Printf("youtube: durations fetched for %d/%d videos", end, len(videoIDs))
	}

	return durations, nil
}

// thumbnailURL picks the medium thumbnail, falling back to default.
func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Medium != nil && t.Medium.Url != "" {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}

// isTransientAPIError reports whether a Data API error is worth retrying.
// Client errors (bad playlist, quota, bad request) are permanent.
func isTransientAPIError(err error) bool {
	if !retry.Transient(err) {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500
	}
	return true
}

// mapAPIError converts Data API errors to the package sentinels where a
// specific condition is recognizable.
func mapAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case 404:
		return fmt.Errorf("%w: %v", ErrPlaylistNotFound, err)
	case 403:
		for _, item := range apiErr.Errors {
			if strings.Contains(item.Reason, "quota") {
				return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
			}
		}
	}
	return err
}
