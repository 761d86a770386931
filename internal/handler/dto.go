package handler

import "newspector/internal/model"

type ItemEventRequest struct {
	EventID string          `json:"event_id"`
	Before  *model.NewsItem `json:"before"`
	After   *model.NewsItem `json:"after"`
}

type GroupEventRequest struct {
	EventID string           `json:"event_id"`
	Before  *model.NewsGroup `json:"before"`
	After   *model.NewsGroup `json:"after"`
}

type VoteEventRequest struct {
	EventID    string `json:"event_id"`
	NewsItemID string `json:"news_item_id"`
	Up         bool   `json:"up"`
}

type ReportEventRequest struct {
	EventID    string `json:"event_id"`
	NewsItemID string `json:"news_item_id"`
}

type EventAcceptedResponse struct {
	EventID string `json:"event_id"`
	Kind    string `json:"kind"`
}

type AccountResponse struct {
	Username        string           `json:"username"`
	CategoryMap     map[string]int64 `json:"category_map"`
	NewsCount       int64            `json:"news_count"`
	MembershipCount int64            `json:"news_group_membership_count"`
	LeadershipCount int64            `json:"news_group_leadership_count"`
	FirstComer      int64            `json:"first_comer"`
	CloseSecond     int64            `json:"close_second"`
	LateComer       int64            `json:"late_comer"`
	SlowPoke        int64            `json:"slow_poke"`
	FollowUp        int64            `json:"follow_up"`
	LikeCount       int64            `json:"like_count"`
	DislikeCount    int64            `json:"dislike_count"`
	ReportCount     int64            `json:"report_count"`
}

type GroupResponse struct {
	ID             string           `json:"id"`
	CategoryMap    map[string]int64 `json:"category_map"`
	SourceCountMap map[string]int64 `json:"source_count_map"`
	Category       string           `json:"category"`
	IsActive       bool             `json:"is_active"`
	Count          int64            `json:"count"`
	GroupLeader    string           `json:"group_leader"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}
