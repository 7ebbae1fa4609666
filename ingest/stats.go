package ingest

import (
	"sort"

	"github.com/burkiv/dersb/content"
)

// Stats summarizes how a batch of videos classified, for diagnostic
// reporting after an ingestion run.
type Stats struct {
	// ByTopic counts matched videos per topic ID.
	ByTopic map[string]int
	// Unmatched counts videos no rule matched.
	Unmatched int
}

// CollectStats aggregates classification counts over an ingested video list.
func CollectStats(videos []content.Video) Stats {
	stats := Stats{ByTopic: make(map[string]int)}
	for _, v := range videos {
		if v.TopicID == nil {
			stats.Unmatched++
			continue
		}
		stats.ByTopic[*v.TopicID]++
	}
	return stats
}

// Topics returns the matched topic IDs in lexical order, for stable reports.
func (s Stats) Topics() []string {
	topics := make([]string, 0, len(s.ByTopic))
	for topicID := range s.ByTopic {
		topics = append(topics, topicID)
	}
	sort.Strings(topics)
	return topics
}
