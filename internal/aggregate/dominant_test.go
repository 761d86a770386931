package aggregate

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"newspector/internal/model"
)

func TestResolveDominantStrictImprovement(t *testing.T) {
	m := map[string]int64{"A": 3, "B": 7}

	assert.Equal(t, "B", ResolveDominantCategory(m, "A"))
}

func TestResolveDominantTieKeepsCurrent(t *testing.T) {
	m := map[string]int64{"A": 5, "B": 5}

	assert.Equal(t, "A", ResolveDominantCategory(m, "A"))
	assert.Equal(t, "B", ResolveDominantCategory(m, "B"))
}

func TestResolveDominantIdempotent(t *testing.T) {
	m := map[string]int64{"Sports": 2, "Politics": 6, "Economy": 6}

	first := ResolveDominantCategory(m, model.SentinelCategory)
	second := ResolveDominantCategory(m, first)

	assert.Equal(t, first, second)
}

func TestResolveDominantFromSentinel(t *testing.T) {
	m := map[string]int64{"Sports": 1}

	assert.Equal(t, "Sports", ResolveDominantCategory(m, model.SentinelCategory))
}

func TestResolveDominantSentinelKeyExcluded(t *testing.T) {
	// a sentinel entry in the map never wins, whatever its count
	m := map[string]int64{model.SentinelCategory: 10, "Sports": 1}

	assert.Equal(t, "Sports", ResolveDominantCategory(m, model.SentinelCategory))
}

func TestResolveDominantEmptyMap(t *testing.T) {
	assert.Equal(t, model.SentinelCategory, ResolveDominantCategory(nil, model.SentinelCategory))
	assert.Equal(t, "A", ResolveDominantCategory(map[string]int64{}, "A"))
}

func TestResolveDominantCurrentMissingFromMap(t *testing.T) {
	// current label absent from the map competes from zero
	m := map[string]int64{"B": 1}

	assert.Equal(t, "B", ResolveDominantCategory(m, "A"))
}

func TestResolveDominantNewcomerTieDeterministic(t *testing.T) {
	// two newcomers with equal counts both beat the current label; the
	// scan order makes the outcome stable across calls
	m := map[string]int64{"A": 1, "B": 5, "C": 5}

	for i := 0; i < 10; i++ {
		assert.Equal(t, "B", ResolveDominantCategory(m, "A"))
	}
}
