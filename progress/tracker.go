// Package progress tracks per-user study state: the set of watched videos,
// best quiz scores, and a daily streak. State lives in a single persisted
// record and every mutation is written through before the call returns.
package progress

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/burkiv/dersb/storage"
)

// ProgressKey is the fixed record key the tracker persists under.
const ProgressKey = "dersb-progress"

// dateLayout is the calendar-day granularity used for streak bookkeeping.
const dateLayout = "2006-01-02"

// Clock supplies the current local time. Injected so tests can simulate days.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// State is the persisted progress record. Unknown fields in a stored record
// are ignored on read so newer app versions can extend it.
type State struct {
	WatchedItems     []string       `json:"watchedItems"`
	QuizScores       map[string]int `json:"quizScores"`
	Streak           int            `json:"streak"`
	LastActivityDate string         `json:"lastActivityDate,omitempty"`
}

// Tracker owns the progress state and is the only writer of its record.
// It is designed for a single logical thread of control: all transitions
// are invoked synchronously from UI event handlers.
type Tracker struct {
	store storage.RecordStore
	clock Clock

	watched      map[string]struct{}
	scores       map[string]int
	streak       int
	lastActivity string // YYYY-MM-DD local, "" before first activity
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the system clock, primarily for tests.
func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// NewTracker loads the progress record from the store, falling back to the
// empty initial state when the record is missing or unreadable. The tracker
// must never fail to start over storage contents: first run and cleared
// storage are normal conditions.
func NewTracker(store storage.RecordStore, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		clock:   systemClock{},
		watched: make(map[string]struct{}),
		scores:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(t)
	}

	var st State
	if err := store.Get(ProgressKey, &st); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("progress: unreadable record, starting fresh: %v", err)
		}
		return t
	}

	for _, id := range st.WatchedItems {
		t.watched[id] = struct{}{}
	}
	for quizID, score := range st.QuizScores {
		t.scores[quizID] = score
	}
	t.streak = st.Streak
	t.lastActivity = st.LastActivityDate
	return t
}

// MarkWatched adds itemID to the watched set. Marking an already-watched
// item changes nothing and does not count as activity, so replayed UI
// events cannot inflate the streak.
func (t *Tracker) MarkWatched(itemID string) error {
	if _, seen := t.watched[itemID]; seen {
		return nil
	}
	t.watched[itemID] = struct{}{}
	t.recordActivity()
	return t.save()
}

// RecordQuizScore records a quiz attempt. The stored best score per quiz
// never decreases; the attempt counts as activity whether or not the score
// improved. Scores outside 0-100 are rejected rather than clamped.
func (t *Tracker) RecordQuizScore(quizID string, score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("progress: score %d out of range [0,100]: %w", score, storage.ErrInvalidInput)
	}
	if best, ok := t.scores[quizID]; !ok || score > best {
		t.scores[quizID] = score
	}
	t.recordActivity()
	return t.save()
}

// Reset returns all state to its initial values.
func (t *Tracker) Reset() error {
	t.watched = make(map[string]struct{})
	t.scores = make(map[string]int)
	t.streak = 0
	t.lastActivity = ""
	return t.save()
}

// Watched reports whether itemID has been marked watched.
func (t *Tracker) Watched(itemID string) bool {
	_, ok := t.watched[itemID]
	return ok
}

// WatchedCount returns the size of the watched set.
func (t *Tracker) WatchedCount() int { return len(t.watched) }

// BestScore returns the best recorded score for a quiz.
func (t *Tracker) BestScore(quizID string) (int, bool) {
	score, ok := t.scores[quizID]
	return score, ok
}

// Streak returns the count of consecutive calendar days with activity.
func (t *Tracker) Streak() int { return t.streak }

// LastActivityDate returns the local calendar date (YYYY-MM-DD) of the most
// recent qualifying action, or "" if none yet.
func (t *Tracker) LastActivityDate() string { return t.lastActivity }

// ProgressPercent returns the rounded percentage of items watched among a
// scope of total items, where scope membership is recovered by the item-ID
// namespace prefix established at ingestion time. Zero total yields zero.
func (t *Tracker) ProgressPercent(idPrefix string, total int) int {
	if total <= 0 {
		return 0
	}
	watched := 0
	for id := range t.watched {
		if strings.HasPrefix(id, idPrefix) {
			watched++
		}
	}
	return int(float64(watched)/float64(total)*100 + 0.5)
}

// recordActivity advances the streak for today's first qualifying action.
// Same-day repeats are no-ops; activity the day after the last one extends
// the streak; any other gap, including a stored date in the future after a
// clock change, restarts the streak at 1.
func (t *Tracker) recordActivity() {
	today := t.clock.Now().Format(dateLayout)
	if t.lastActivity == today {
		return
	}

	yesterday := t.clock.Now().AddDate(0, 0, -1).Format(dateLayout)
	if t.lastActivity == yesterday {
		t.streak++
	} else {
		t.streak = 1
	}
	t.lastActivity = today
}

// save writes the whole record through to the store. The watched set is
// serialized sorted so repeated saves of the same state are byte-identical.
func (t *Tracker) save() error {
	st := State{
		WatchedItems:     make([]string, 0, len(t.watched)),
		QuizScores:       t.scores,
		Streak:           t.streak,
		LastActivityDate: t.lastActivity,
	}
	for id := range t.watched {
		st.WatchedItems = append(st.WatchedItems, id)
	}
	sort.Strings(st.WatchedItems)

	return t.store.Put(ProgressKey, st)
}
