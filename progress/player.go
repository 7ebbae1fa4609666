package progress

import (
	"errors"
	"fmt"
	"log"

	"github.com/burkiv/dersb/storage"
)

// PlayerKey is the fixed record key for playback preferences.
const PlayerKey = "dersb-player"

// defaultVolume applies when no preference has been persisted yet.
const defaultVolume = 0.8

// playerState is the persisted playback-preference record. Only the volume
// survives restarts; transient playback position stays in the UI layer.
type playerState struct {
	Volume float64 `json:"volume"`
}

// Player persists the playback volume preference. It shares the tracker's
// substrate contract: read once at start, write through on change, tolerate
// a missing record by applying defaults.
type Player struct {
	store  storage.RecordStore
	volume float64
}

// NewPlayer loads the playback preferences, applying defaults when the
// record is missing or unreadable.
func NewPlayer(store storage.RecordStore) *Player {
	p := &Player{store: store, volume: defaultVolume}

	var st playerState
	if err := store.Get(PlayerKey, &st); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("progress: unreadable player record, using defaults: %v", err)
		}
		return p
	}
	if st.Volume >= 0 && st.Volume <= 1 {
		p.volume = st.Volume
	}
	return p
}

// Volume returns the persisted playback volume in [0.0, 1.0].
func (p *Player) Volume() float64 { return p.volume }

// SetVolume persists a new playback volume. Out-of-range values are
// rejected rather than clamped.
func (p *Player) SetVolume(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("progress: volume %v out of range [0,1]: %w", v, storage.ErrInvalidInput)
	}
	p.volume = v
	return p.store.Put(PlayerKey, playerState{Volume: v})
}
