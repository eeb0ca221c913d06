// Package selection tracks which candidates are checked for bulk actions or
// side-by-side comparison. The tracker holds ids only; callers join against
// the current candidate set so a refresh never leaves stale records here.
package selection

// Mode controls the tracker's capacity rule.
type Mode int

const (
	// ModeBulk has no size limit.
	ModeBulk Mode = iota
	// ModeCompare caps the selection at CompareLimit, evicting the oldest
	// id when a new one is toggled in (sliding window, not rejection).
	ModeCompare
)

// CompareLimit bounds the comparison view width.
const CompareLimit = 3

// Tracker is an ordered set of selected candidate ids.
type Tracker struct {
	mode Mode
	ids  []string
}

// NewTracker returns an empty tracker operating under the given mode.
func NewTracker(mode Mode) *Tracker {
	return &Tracker{mode: mode}
}

// Toggle adds the id if absent and removes it if present. In compare mode,
// adding beyond the cap evicts the oldest selected id first.
func (t *Tracker) Toggle(id string) {
	for i, existing := range t.ids {
		if existing == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			return
		}
	}
	t.ids = append(t.ids, id)
	if t.mode == ModeCompare && len(t.ids) > CompareLimit {
		t.ids = t.ids[len(t.ids)-CompareLimit:]
	}
}

// Clear empties the selection.
func (t *Tracker) Clear() {
	t.ids = nil
}

// Selected returns the selected ids in insertion order. The returned slice
// is a copy; mutating it does not affect the tracker.
func (t *Tracker) Selected() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Count returns the number of selected ids.
func (t *Tracker) Count() int {
	return len(t.ids)
}

// Has reports whether the id is currently selected.
func (t *Tracker) Has(id string) bool {
	for _, existing := range t.ids {
		if existing == id {
			return true
		}
	}
	return false
}
