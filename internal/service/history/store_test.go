package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushDeduplicates(t *testing.T) {
	var ids []string
	ids = Push(ids, "A")
	ids = Push(ids, "B")
	ids = Push(ids, "A")

	assert.Equal(t, []string{"A", "B"}, ids)
}

func TestPushMostRecentFirst(t *testing.T) {
	var ids []string
	for _, id := range []string{"A", "B", "C"} {
		ids = Push(ids, id)
	}
	assert.Equal(t, []string{"C", "B", "A"}, ids)
}

func TestPushCapsAtMaxEntries(t *testing.T) {
	var ids []string
	for _, id := range []string{"A", "B", "C", "D", "E", "F"} {
		ids = Push(ids, id)
	}
	assert.Len(t, ids, MaxEntries)
	assert.Equal(t, []string{"F", "E", "D", "C", "B"}, ids)
}

func TestPushExistingToFrontKeepsLength(t *testing.T) {
	var ids []string
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		ids = Push(ids, id)
	}
	ids = Push(ids, "A")
	assert.Equal(t, []string{"A", "E", "D", "C", "B"}, ids)
}
