package aggregate

import (
	"sort"

	"newspector/internal/model"
)

// ResolveDominantCategory picks the category with the highest count in m.
// The current dominant category wins ties: a candidate must strictly
// exceed its count to replace it, so equal counts never relabel a group.
// The sentinel category is excluded from competition. Candidates are
// scanned in sorted key order, so equal-count newcomers resolve the same
// way on every call.
func ResolveDominantCategory(m map[string]int64, current string) string {
	dominant := current
	var maxCount int64

	if current != model.SentinelCategory {
		if count, ok := m[current]; ok {
			maxCount = count
		}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == model.SentinelCategory {
			continue
		}
		if m[k] > maxCount {
			dominant = k
			maxCount = m[k]
		}
	}

	return dominant
}
