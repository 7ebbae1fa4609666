// Package dersb provides the building blocks of a Turkish exam-prep study
// app: playlist ingestion, topic classification, and local progress tracking.
//
// # Overview
//
// The library is organized around three concerns:
//
//   - ingest: fetch a YouTube playlist, classify every video into a
//     curriculum topic, and produce a content pack artifact
//   - classify: keyword rule tables that map video titles to topic IDs
//   - progress: watched state, quiz scores, and daily streaks persisted
//     in a local key-value record store
//
// # Quick Start
//
// Ingest a playlist into a content pack:
//
//	ctx := context.Background()
//	catalog, err := youtube.NewAPICatalog(ctx, os.Getenv("YOUTUBE_API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	job := ingest.Job{
//		PlaylistID: "PLxxxxxx",
//		CourseID:   "tarih",
//		SourceName: "Ramazan Yetgin",
//	}
//	pack, err := ingest.New(catalog, nil).Run(ctx, job)
//	if err != nil {
//		log.Fatal(err)
//	}
//	content.WritePackFile(job.Output(), pack)
//
// Track progress locally:
//
//	store, err := storage.NewFileStore("progress.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//	tracker := progress.NewTracker(store)
//	tracker.MarkWatched("ramazan-yetgin-dQw4w9WgXcQ")
//	tracker.RecordQuizScore("quiz-tarih-osmanli-kurulus", 85)
//	fmt.Println(tracker.Streak())
//
// # Configuration
//
// The dersb CLI reads its YouTube Data API key from, in order of priority:
//
//  1. The --api-key flag
//  2. The YOUTUBE_API_KEY environment variable
//  3. A .env file in the working directory
//
// Topic rules are built in (see classify.DefaultRules) and can be replaced
// with a YAML file via the --rules flag.
//
// # Error Handling
//
// All operations return errors that work with errors.Is and errors.As:
//
//	if errors.Is(err, dersb.ErrPlaylistNotFound) {
//		fmt.Println("playlist does not exist")
//	}
//
//	var storageErr *dersb.StorageError
//	if errors.As(err, &storageErr) {
//		fmt.Printf("storage %s on %q failed: %v\n", storageErr.Op, storageErr.Key, storageErr.Err)
//	}
//
// # Sub-packages
//
// For more control, use the sub-packages directly:
//
//   - youtube: playlist listing and video duration lookup
//   - classify: topic rule tables and Turkish-aware matching
//   - ingest: the fetch-classify-write pipeline
//   - content: the static course library and pack artifact format
//   - progress: watched state, quiz scores, streaks, player preferences
//   - quizgen: AI quiz generation from video transcripts
//   - storage: locked, atomically written JSON record store
package dersb
