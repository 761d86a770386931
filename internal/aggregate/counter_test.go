package aggregate

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"newspector/internal/model"
)

func TestMergeDeltaNewKey(t *testing.T) {
	m := map[string]int64{"Sports": 2}

	out, wasNew := MergeDelta(m, "Politics", 1)

	assert.Equal(t, true, wasNew)
	assert.Equal(t, int64(1), out["Politics"])
	assert.Equal(t, int64(2), out["Sports"])
}

func TestMergeDeltaExistingKey(t *testing.T) {
	m := map[string]int64{"Sports": 2}

	out, wasNew := MergeDelta(m, "Sports", 3)

	assert.Equal(t, false, wasNew)
	assert.Equal(t, int64(5), out["Sports"])
}

func TestMergeDeltaDoesNotMutateInput(t *testing.T) {
	m := map[string]int64{"Sports": 2}

	MergeDelta(m, "Sports", 3)
	MergeDelta(m, "Politics", 1)

	assert.Equal(t, int64(2), m["Sports"])
	_, ok := m["Politics"]
	assert.Equal(t, false, ok)
}

func TestMergeDeltaNilMap(t *testing.T) {
	out, wasNew := MergeDelta(nil, "Sports", 1)

	assert.Equal(t, true, wasNew)
	assert.Equal(t, int64(1), out["Sports"])
}

func TestMergeDeltaCommutative(t *testing.T) {
	deltas := []struct {
		key   string
		delta int64
	}{
		{"Sports", 1},
		{"Politics", 4},
		{"Sports", 2},
		{"Economy", 1},
		{"Politics", 1},
		{"Sports", 1},
	}

	forward := map[string]int64{}
	for _, d := range deltas {
		forward, _ = MergeDelta(forward, d.key, d.delta)
	}

	backward := map[string]int64{}
	for i := len(deltas) - 1; i >= 0; i-- {
		backward, _ = MergeDelta(backward, deltas[i].key, deltas[i].delta)
	}

	assert.Equal(t, forward, backward)
	assert.Equal(t, int64(4), forward["Sports"])
	assert.Equal(t, int64(5), forward["Politics"])
	assert.Equal(t, int64(1), forward["Economy"])
}

func TestBehaviorTagFirstContribution(t *testing.T) {
	assert.Equal(t, model.TagFirstComer, BehaviorTag(true, 0))
	assert.Equal(t, model.TagCloseSecond, BehaviorTag(true, 1))
	assert.Equal(t, model.TagLateComer, BehaviorTag(true, 2))
	assert.Equal(t, model.TagSlowPoke, BehaviorTag(true, 3))
	assert.Equal(t, model.TagSlowPoke, BehaviorTag(true, 42))
}

func TestBehaviorTagRepeatContribution(t *testing.T) {
	// a second contribution is always a follow-up, regardless of group size
	assert.Equal(t, model.TagFollowUp, BehaviorTag(false, 0))
	assert.Equal(t, model.TagFollowUp, BehaviorTag(false, 7))
}
