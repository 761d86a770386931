package aggregate

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"newspector/internal/model"
)

func TestClassifyItemChangeReportCountWins(t *testing.T) {
	// report count takes priority even when other fields changed too
	before := &model.NewsItem{ReportCount: 0, NewsGroupID: ""}
	after := &model.NewsItem{ReportCount: 1, NewsGroupID: "g1"}

	assert.Equal(t, ItemReportCountChanged, ClassifyItemChange(before, after))
}

func TestClassifyItemChangePerceivedCategoryOnGroupedItem(t *testing.T) {
	before := &model.NewsItem{NewsGroupID: "g1", PerceivedCategory: "Sports"}
	after := &model.NewsItem{NewsGroupID: "g1", PerceivedCategory: "Politics"}

	assert.Equal(t, ItemPerceivedCategoryChanged, ClassifyItemChange(before, after))
}

func TestClassifyItemChangeGroupAssignment(t *testing.T) {
	before := &model.NewsItem{NewsGroupID: ""}
	after := &model.NewsItem{NewsGroupID: "g1"}

	assert.Equal(t, ItemGroupAssigned, ClassifyItemChange(before, after))
}

func TestClassifyItemChangeGroupAssignmentWithPerceivedCategory(t *testing.T) {
	// an ungrouped item picking up both a group id and a perceived
	// category is still an attribution, not a relabel echo
	before := &model.NewsItem{NewsGroupID: "", PerceivedCategory: model.SentinelCategory}
	after := &model.NewsItem{NewsGroupID: "g1", PerceivedCategory: "Sports"}

	assert.Equal(t, ItemGroupAssigned, ClassifyItemChange(before, after))
}

func TestClassifyItemChangeNoActionableField(t *testing.T) {
	before := &model.NewsItem{NewsGroupID: "g1", Category: "Sports"}
	after := &model.NewsItem{NewsGroupID: "g1", Category: "Politics"}

	assert.Equal(t, ItemNoAction, ClassifyItemChange(before, after))
}

func TestClassifyItemChangeMissingSnapshot(t *testing.T) {
	assert.Equal(t, ItemNoAction, ClassifyItemChange(nil, &model.NewsItem{}))
	assert.Equal(t, ItemNoAction, ClassifyItemChange(&model.NewsItem{}, nil))
}

func TestClassifyGroupChangeCategory(t *testing.T) {
	before := &model.NewsGroup{Category: "Sports", IsActive: true}
	after := &model.NewsGroup{Category: "Politics", IsActive: true}

	assert.Equal(t, GroupCategoryChanged, ClassifyGroupChange(before, after))
}

func TestClassifyGroupChangeStatus(t *testing.T) {
	before := &model.NewsGroup{Category: "Sports", IsActive: true}
	after := &model.NewsGroup{Category: "Sports", IsActive: false}

	assert.Equal(t, GroupStatusChanged, ClassifyGroupChange(before, after))
}

func TestClassifyGroupChangeCounters(t *testing.T) {
	before := &model.NewsGroup{Category: "Sports", IsActive: true, Count: 1}
	after := &model.NewsGroup{Category: "Sports", IsActive: true, Count: 2}

	assert.Equal(t, GroupCountersChanged, ClassifyGroupChange(before, after))
}

func TestClassifyGroupChangeMissingSnapshot(t *testing.T) {
	assert.Equal(t, GroupNoAction, ClassifyGroupChange(nil, &model.NewsGroup{}))
	assert.Equal(t, GroupNoAction, ClassifyGroupChange(&model.NewsGroup{}, nil))
}
