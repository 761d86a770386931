package model

import "time"

const (
	// SentinelCategory marks a news group that has not been labeled yet.
	// It never competes for dominant category and is never credited to
	// an account's category map.
	SentinelCategory = "-"
)

// CategoryMap counts news items per category. An absent key counts as zero.
type CategoryMap map[string]int64

// SourceCountMap counts contributions per account username.
type SourceCountMap map[string]int64

// Tag classifies how an account contributed to a news group.
type Tag string

const (
	TagFirstComer  Tag = "first_comer"
	TagCloseSecond Tag = "close_second"
	TagLateComer   Tag = "late_comer"
	TagSlowPoke    Tag = "slow_poke"
	TagFollowUp    Tag = "follow_up"
)

type Account struct {
	Username        string      `json:"username"`
	CategoryMap     CategoryMap `json:"category_map"`
	NewsCount       int64       `json:"news_count"`
	MembershipCount int64       `json:"news_group_membership_count"`
	LeadershipCount int64       `json:"news_group_leadership_count"`
	FirstComer      int64       `json:"first_comer"`
	CloseSecond     int64       `json:"close_second"`
	LateComer       int64       `json:"late_comer"`
	SlowPoke        int64       `json:"slow_poke"`
	FollowUp        int64       `json:"follow_up"`
	LikeCount       int64       `json:"like_count"`
	DislikeCount    int64       `json:"dislike_count"`
	ReportCount     int64       `json:"report_count"`
}

func NewAccount(username string) *Account {
	return &Account{
		Username:    username,
		CategoryMap: CategoryMap{},
	}
}

// AddTag increments the behavior counter matching the given tag.
func (a *Account) AddTag(tag Tag) {
	switch tag {
	case TagFirstComer:
		a.FirstComer++
	case TagCloseSecond:
		a.CloseSecond++
	case TagLateComer:
		a.LateComer++
	case TagSlowPoke:
		a.SlowPoke++
	case TagFollowUp:
		a.FollowUp++
	}
}

type NewsGroup struct {
	ID             string         `json:"id"`
	CategoryMap    CategoryMap    `json:"category_map"`
	SourceCountMap SourceCountMap `json:"source_count_map"`
	Category       string         `json:"category"`
	IsActive       bool           `json:"is_active"`
	Count          int64          `json:"count"`
	GroupLeader    string         `json:"group_leader"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func NewNewsGroup(id string) *NewsGroup {
	return &NewsGroup{
		ID:             id,
		CategoryMap:    CategoryMap{},
		SourceCountMap: SourceCountMap{},
		Category:       SentinelCategory,
		IsActive:       true,
	}
}

type NewsItem struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	NewsGroupID       string    `json:"news_group_id"`
	Category          string    `json:"category"`
	PerceivedCategory string    `json:"perceived_category"`
	ReportCount       int64     `json:"report_count"`
	Date              time.Time `json:"date"`
	Text              string    `json:"text"`
	Photos            []string  `json:"photos"`
}
