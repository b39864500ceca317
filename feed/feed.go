// Package feed holds the client-side view of a coverage timeline: the
// update list as last fetched from the server, ordered for display.
// Each load replaces the whole set; there is no incremental merge.
package feed

import (
	"sort"
	"sync"
	"time"
)

// FlexTime decodes server timestamps without ever failing the whole
// payload. Anything unparsable sorts as the zero time.
type FlexTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339Nano) + `"`), nil
}

// Update is one timestamped entry of a coverage timeline as served by
// GET /api/live-coverages/:id/updates.
type Update struct {
	ID         uint      `json:"id"`
	CoverageID uint      `json:"coverage_id"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl"`
	Important  bool      `json:"important"`
	AuthorID   *uint     `json:"author_id"`
	Timestamp  *FlexTime `json:"timestamp"`
	CreatedAt  FlexTime  `json:"created_at"`
}

// EffectiveTime is the instant the update sorts by: the explicit
// timestamp when present (even if it failed to parse and is zero),
// creation time otherwise.
func (u Update) EffectiveTime() time.Time {
	if u.Timestamp != nil {
		return u.Timestamp.Time
	}
	return u.CreatedAt.Time
}

// SortForDisplay returns a new slice ordered newest first by effective
// time, id ascending on ties. Deterministic and idempotent.
func SortForDisplay(updates []Update) []Update {
	sorted := make([]Update, len(updates))
	copy(sorted, updates)
	sort.Slice(sorted, func(i, j int) bool {
		ti, tj := sorted[i].EffectiveTime(), sorted[j].EffectiveTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Store keeps the current snapshot for one coverage. A failed load keeps
// the last-known-good updates and records a retryable error instead.
type Store struct {
	mu       sync.RWMutex
	updates  []Update
	err      error
	loadedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs a freshly fetched update set, sorted for display,
// and clears any previous error.
func (s *Store) Replace(updates []Update) {
	sorted := SortForDisplay(updates)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = sorted
	s.err = nil
	s.loadedAt = time.Now()
}

// Fail records a load error. The previous snapshot stays visible.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Snapshot returns the current display order. Callers own the returned
// slice.
func (s *Store) Snapshot() []Update {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Update, len(s.updates))
	copy(out, s.updates)
	return out
}

// Err reports the error of the most recent load, nil after a success.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// LoadedAt reports when the snapshot was last replaced successfully.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
