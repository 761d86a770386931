package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"newspector/internal/model"
)

type EventQueue interface {
	Push(data string) error
}

// EventHandler accepts change events from the upstream trigger source
// and enqueues them for the worker. Delivery into the queue is the only
// thing the ingest path does; all aggregation happens downstream.
type EventHandler struct {
	queue EventQueue
}

func NewEventHandler(queue EventQueue) *EventHandler {
	return &EventHandler{queue: queue}
}

func (h *EventHandler) PostItemEvent(c *gin.Context) {
	var req ItemEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	if req.After == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing after snapshot"})
		return
	}

	ev := model.ItemChangeEvent{EventID: eventID(req.EventID), Before: req.Before, After: req.After}
	h.enqueue(c, model.EventItemUpdate, ev.EventID, ev)
}

func (h *EventHandler) PostGroupEvent(c *gin.Context) {
	var req GroupEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	if req.After == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing after snapshot"})
		return
	}

	// no before snapshot means the document was just created
	if req.Before == nil {
		ev := model.GroupCreateEvent{EventID: eventID(req.EventID), Group: req.After}
		h.enqueue(c, model.EventGroupCreate, ev.EventID, ev)
		return
	}

	ev := model.GroupChangeEvent{EventID: eventID(req.EventID), Before: req.Before, After: req.After}
	h.enqueue(c, model.EventGroupUpdate, ev.EventID, ev)
}

func (h *EventHandler) PostVoteEvent(c *gin.Context) {
	var req VoteEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewsItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	ev := model.VoteEvent{EventID: eventID(req.EventID), NewsItemID: req.NewsItemID, Up: req.Up}
	h.enqueue(c, model.EventVote, ev.EventID, ev)
}

func (h *EventHandler) PostReportEvent(c *gin.Context) {
	var req ReportEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewsItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	ev := model.ReportEvent{EventID: eventID(req.EventID), NewsItemID: req.NewsItemID}
	h.enqueue(c, model.EventReport, ev.EventID, ev)
}

func (h *EventHandler) enqueue(c *gin.Context, kind model.EventKind, eventID string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Error("error marshaling event payload", "kind", kind, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	envelope, err := json.Marshal(model.Envelope{EventID: eventID, Kind: kind, Payload: raw})
	if err != nil {
		slog.Error("error marshaling event envelope", "kind", kind, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	if err := h.queue.Push(string(envelope)); err != nil {
		slog.Error("error pushing event to queue", "kind", kind, "event_id", eventID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	c.JSON(http.StatusAccepted, EventAcceptedResponse{EventID: eventID, Kind: string(kind)})
}

func eventID(requested string) string {
	if requested != "" {
		return requested
	}
	return uuid.NewString()
}
