// Package aggregate holds the pure compute core: counter-map merges,
// dominant-category resolution, behavior tagging and change-event
// classification. Nothing here touches the store.
package aggregate

import "newspector/internal/model"

// MergeDelta returns a copy of m with delta added to key. The second
// result reports whether key was absent before the merge; callers use it
// to pick a creating merge-write over a targeted update.
func MergeDelta(m map[string]int64, key string, delta int64) (map[string]int64, bool) {
	out := make(map[string]int64, len(m)+1)
	for k, v := range m {
		out[k] = v
	}

	_, exists := out[key]
	out[key] += delta
	return out, !exists
}

// BehaviorTag maps a contribution to the account behavior counter it
// credits. groupCount is the group's item count before this contribution.
func BehaviorTag(firstContribution bool, groupCount int64) model.Tag {
	if !firstContribution {
		return model.TagFollowUp
	}

	switch groupCount {
	case 0:
		return model.TagFirstComer
	case 1:
		return model.TagCloseSecond
	case 2:
		return model.TagLateComer
	default:
		return model.TagSlowPoke
	}
}
