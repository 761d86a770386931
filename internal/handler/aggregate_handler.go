package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newspector/internal/model"
)

type AggregateStore interface {
	GetAccount(ctx context.Context, username string) (*model.Account, error)
	GetNewsGroup(ctx context.Context, id string) (*model.NewsGroup, error)
}

// AggregateHandler serves the derived aggregate documents for inspection.
type AggregateHandler struct {
	store AggregateStore
}

func NewAggregateHandler(store AggregateStore) *AggregateHandler {
	return &AggregateHandler{store: store}
}

func (h *AggregateHandler) GetAccount(c *gin.Context) {
	username := c.Param("id")

	acct, err := h.store.GetAccount(c.Request.Context(), username)
	if err != nil {
		slog.Error("error fetching account", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if acct == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{
		Username:        acct.Username,
		CategoryMap:     acct.CategoryMap,
		NewsCount:       acct.NewsCount,
		MembershipCount: acct.MembershipCount,
		LeadershipCount: acct.LeadershipCount,
		FirstComer:      acct.FirstComer,
		CloseSecond:     acct.CloseSecond,
		LateComer:       acct.LateComer,
		SlowPoke:        acct.SlowPoke,
		FollowUp:        acct.FollowUp,
		LikeCount:       acct.LikeCount,
		DislikeCount:    acct.DislikeCount,
		ReportCount:     acct.ReportCount,
	})
}

func (h *AggregateHandler) GetNewsGroup(c *gin.Context) {
	id := c.Param("id")

	group, err := h.store.GetNewsGroup(c.Request.Context(), id)
	if err != nil {
		slog.Error("error fetching news group", "news_group_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News group not found"})
		return
	}

	c.JSON(http.StatusOK, GroupResponse{
		ID:             group.ID,
		CategoryMap:    group.CategoryMap,
		SourceCountMap: group.SourceCountMap,
		Category:       group.Category,
		IsActive:       group.IsActive,
		Count:          group.Count,
		GroupLeader:    group.GroupLeader,
		CreatedAt:      group.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      group.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *AggregateHandler) GetHealth(c *gin.Context) {
	_, err := h.store.GetAccount(c.Request.Context(), "health-check")
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
