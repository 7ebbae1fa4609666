package content

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/burkiv/dersb/storage"
)

// Pack is the per-(course, instructor) artifact the ingestion tool writes
// and the app imports statically. Metadata keys keep the underscore form so
// regenerated files stay compatible with packs already in use.
type Pack struct {
	Generated  time.Time  `json:"_generated"`
	PlaylistID string     `json:"_playlistId"`
	CourseID   string     `json:"_courseId"`
	Instructor Instructor `json:"instructor"`
}

// ParsePack decodes a pack artifact from raw JSON.
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pack: %w", err)
	}
	return &p, nil
}

// ReadPackFile loads a pack artifact from disk.
func ReadPackFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack %s: %w", path, err)
	}
	return ParsePack(data)
}

// WritePackFile writes the pack artifact atomically, creating parent
// directories as needed. The file is pretty-printed for reviewability.
func WritePackFile(path string, p *Pack) error {
	writer, err := storage.NewAtomicWriter(path)
	if err != nil {
		return fmt.Errorf("write pack %s: %w", path, err)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(p); err != nil {
		writer.Abort()
		return fmt.Errorf("encode pack %s: %w", path, err)
	}

	if err := writer.Commit(); err != nil {
		return fmt.Errorf("write pack %s: %w", path, err)
	}
	return nil
}
