// Package ingest turns a source playlist into a classified content pack.
// It lists the playlist through a catalog, filters out removed videos,
// classifies each title, annotates durations, and assembles the artifact
// the app consumes.
package ingest

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/burkiv/dersb/classify"
	"github.com/burkiv/dersb/content"
	"github.com/burkiv/dersb/youtube"
)

// sentinelTitles are placeholder titles the catalog returns for videos
// that were removed or made private. They carry no usable content and are
// excluded before classification and sorting.
var sentinelTitles = map[string]bool{
	"Private video": true,
	"Deleted video": true,
}

// Job describes one playlist ingestion run.
type Job struct {
	// PlaylistID is the source playlist identifier.
	PlaylistID string
	// CourseID selects the classifier rule table ("tarih", "matematik", ...).
	CourseID string
	// SourceName is the human-readable instructor/source label. Its slug
	// becomes the item-ID namespace, so renaming the source changes every
	// derived identifier.
	SourceName string
	// Description is an optional free-text label for the source.
	Description string
	// OutputPath overrides the default artifact location.
	OutputPath string
}

// validate checks the required job fields.
func (j Job) validate() error {
	if j.PlaylistID == "" {
		return fmt.Errorf("ingest: playlist id required")
	}
	if j.CourseID == "" {
		return fmt.Errorf("ingest: course id required")
	}
	if j.SourceName == "" {
		return fmt.Errorf("ingest: source name required")
	}
	return nil
}

// Output returns the artifact path for the job, deriving the default
// data/<course>_<source-slug>.json when no override is set.
func (j Job) Output() string {
	if j.OutputPath != "" {
		return j.OutputPath
	}
	return filepath.Join("data", fmt.Sprintf("%s_%s.json", j.CourseID, Slugify(j.SourceName)))
}

// Ingestor runs ingestion jobs against a catalog and a classifier.
type Ingestor struct {
	catalog    youtube.Catalog
	classifier *classify.Classifier
	now        func() time.Time
}

// New creates an ingestor. A nil classifier means the default rule tables.
func New(catalog youtube.Catalog, classifier *classify.Classifier) *Ingestor {
	if classifier == nil {
		classifier = classify.NewDefault()
	}
	return &Ingestor{
		catalog:    catalog,
		classifier: classifier,
		now:        time.Now,
	}
}

// Run executes one ingestion job and returns the assembled pack.
// Any catalog failure aborts the run: the artifact is regenerated wholesale
// on success and a partial pack would be misleading.
func (ing *Ingestor) Run(ctx context.Context, job Job) (*content.Pack, error) {
	if err := job.validate(); err != nil {
		return nil, err
	}

	items, err := ing.catalog.PlaylistItems(ctx, job.PlaylistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist %s: %w", job.PlaylistID, err)
	}

	namespace := Slugify(job.SourceName)

	type positioned struct {
		video    content.Video
		position int64
	}

	var videos []positioned
	for _, item := range items {
		if item.VideoID == "" || sentinelTitles[item.Title] {
			continue
		}

		video := content.Video{
			// Namespace + source ID keeps item IDs stable across re-runs,
			// so progress recorded against them survives re-ingestion.
			ID:        fmt.Sprintf("%s-%s", namespace, item.VideoID),
			Title:     item.Title,
			YouTubeID: item.VideoID,
			Thumbnail: item.Thumbnail,
		}
		if topicID, ok := ing.classifier.Classify(job.CourseID, item.Title); ok {
			video.TopicID = &topicID
		}
		videos = append(videos, positioned{video: video, position: item.Position})
	}

	log.Printf("ingest: %d videos after filtering (%d listed)", len(videos), len(items))

	videoIDs := make([]string, len(videos))
	for i, v := range videos {
		videoIDs[i] = v.video.YouTubeID
	}
	durations, err := ing.catalog.VideoDurations(ctx, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch durations: %w", err)
	}
	for i := range videos {
		if d, ok := durations[videos[i].video.YouTubeID]; ok {
			videos[i].video.Duration = d.String()
		}
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].position < videos[j].position
	})

	ordered := make([]content.Video, len(videos))
	for i, v := range videos {
		ordered[i] = v.video
	}

	thumbnail := ""
	if len(ordered) > 0 {
		thumbnail = ordered[0].Thumbnail
	}

	return &content.Pack{
		Generated:  ing.now(),
		PlaylistID: job.PlaylistID,
		CourseID:   job.CourseID,
		Instructor: content.Instructor{
			ID:          namespace,
			Name:        job.SourceName,
			Description: job.Description,
			PlaylistID:  job.PlaylistID,
			Thumbnail:   thumbnail,
			VideoCount:  len(ordered),
			Videos:      ordered,
		},
	}, nil
}
