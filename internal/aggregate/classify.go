package aggregate

import "newspector/internal/model"

// ItemTransition is the single actionable change derived from a news
// item's before/after snapshots. Exactly one transition applies per
// event; the checks run in priority order and the first match wins.
type ItemTransition int

const (
	ItemNoAction ItemTransition = iota
	// ItemReportCountChanged: a report was filed against the item. The
	// counter change itself must not re-enter attribution.
	ItemReportCountChanged
	// ItemPerceivedCategoryChanged: the group relabel cascade wrote the
	// item's perceived category. Acting on it again would loop.
	ItemPerceivedCategoryChanged
	// ItemGroupAssigned: the item was attached to a news group for the
	// first time. This is the attribution transition.
	ItemGroupAssigned
)

func ClassifyItemChange(before, after *model.NewsItem) ItemTransition {
	if before == nil || after == nil {
		return ItemNoAction
	}
	if before.ReportCount != after.ReportCount {
		return ItemReportCountChanged
	}
	if before.PerceivedCategory != after.PerceivedCategory && before.NewsGroupID != "" {
		return ItemPerceivedCategoryChanged
	}
	if before.NewsGroupID != after.NewsGroupID {
		return ItemGroupAssigned
	}
	return ItemNoAction
}

// GroupTransition is the single actionable change derived from a news
// group's before/after snapshots.
type GroupTransition int

const (
	GroupNoAction GroupTransition = iota
	// GroupCategoryChanged: the dominant label was rewritten by the
	// resolver itself. Chain trigger, blocked.
	GroupCategoryChanged
	// GroupStatusChanged: the group was closed or reopened. A close
	// settles the group's contribution counts into account category maps.
	GroupStatusChanged
	// GroupCountersChanged: category or membership counters moved, so the
	// dominant category must be re-resolved.
	GroupCountersChanged
)

func ClassifyGroupChange(before, after *model.NewsGroup) GroupTransition {
	if before == nil || after == nil {
		return GroupNoAction
	}
	if before.Category != after.Category {
		return GroupCategoryChanged
	}
	if before.IsActive != after.IsActive {
		return GroupStatusChanged
	}
	return GroupCountersChanged
}
