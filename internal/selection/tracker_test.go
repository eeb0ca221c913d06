package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle_AddAndRemove(t *testing.T) {
	tr := NewTracker(ModeBulk)

	tr.Toggle("a")
	tr.Toggle("b")
	assert.Equal(t, []string{"a", "b"}, tr.Selected())
	assert.True(t, tr.Has("a"))

	tr.Toggle("a")
	assert.Equal(t, []string{"b"}, tr.Selected())
	assert.False(t, tr.Has("a"))
}

func TestToggle_BulkModeIsUnbounded(t *testing.T) {
	tr := NewTracker(ModeBulk)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		tr.Toggle(id)
	}
	assert.Equal(t, 5, tr.Count())
}

func TestToggle_CompareModeEvictsOldest(t *testing.T) {
	tr := NewTracker(ModeCompare)
	for _, id := range []string{"a", "b", "c", "d"} {
		tr.Toggle(id)
	}
	assert.Equal(t, []string{"b", "c", "d"}, tr.Selected())
}

func TestToggle_CompareModeRemoveDoesNotEvict(t *testing.T) {
	tr := NewTracker(ModeCompare)
	tr.Toggle("a")
	tr.Toggle("b")
	tr.Toggle("c")

	// Removing an id is a plain removal, no cap logic involved.
	tr.Toggle("b")
	assert.Equal(t, []string{"a", "c"}, tr.Selected())

	tr.Toggle("d")
	tr.Toggle("e")
	assert.Equal(t, []string{"c", "d", "e"}, tr.Selected())
}

func TestClear(t *testing.T) {
	tr := NewTracker(ModeCompare)
	tr.Toggle("a")
	tr.Clear()
	assert.Equal(t, 0, tr.Count())
	assert.Empty(t, tr.Selected())
}

func TestSelected_ReturnsCopy(t *testing.T) {
	tr := NewTracker(ModeBulk)
	tr.Toggle("a")

	got := tr.Selected()
	got[0] = "mutated"
	assert.Equal(t, []string{"a"}, tr.Selected())
}
