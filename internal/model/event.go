package model

import "encoding/json"

// EventKind selects which reconciliation handler an incoming change
// event is dispatched to. Each kind is also the handler's dedup ledger
// namespace.
type EventKind string

const (
	EventItemUpdate  EventKind = "item_update"
	EventGroupUpdate EventKind = "group_update"
	EventGroupCreate EventKind = "group_create"
	EventVote        EventKind = "vote"
	EventReport      EventKind = "report"
)

// Envelope is the queue wire format between the ingest API and the worker.
type Envelope struct {
	EventID string          `json:"event_id"`
	Kind    EventKind       `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// ItemChangeEvent carries the before/after snapshots of a news item
// produced by the upstream change-trigger source.
type ItemChangeEvent struct {
	EventID string    `json:"event_id"`
	Before  *NewsItem `json:"before"`
	After   *NewsItem `json:"after"`
}

type GroupChangeEvent struct {
	EventID string     `json:"event_id"`
	Before  *NewsGroup `json:"before"`
	After   *NewsGroup `json:"after"`
}

type GroupCreateEvent struct {
	EventID string     `json:"event_id"`
	Group   *NewsGroup `json:"group"`
}

// VoteEvent records a like or dislike cast on a news item. The vote is
// attributed to the item's author.
type VoteEvent struct {
	EventID    string `json:"event_id"`
	NewsItemID string `json:"news_item_id"`
	Up         bool   `json:"up"`
}

type ReportEvent struct {
	EventID    string `json:"event_id"`
	NewsItemID string `json:"news_item_id"`
}
