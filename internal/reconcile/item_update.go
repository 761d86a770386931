package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"newspector/internal/aggregate"
	"newspector/internal/model"
)

// HandleItemUpdate reacts to a news item change. Only a first-time group
// assignment mutates aggregates: the contribution is attributed to the
// account and the group inside one transaction, and the follower
// notification is queued in the outbox within that same transaction.
func (r *Reconciler) HandleItemUpdate(ctx context.Context, ev model.ItemChangeEvent) error {
	fresh, markProcessed := r.guard(ctx, model.EventItemUpdate, ev.EventID)
	if !fresh {
		slog.Info("duplicate event skipped", "event_id", ev.EventID, "kind", model.EventItemUpdate)
		return nil
	}
	defer markProcessed()

	transition := aggregate.ClassifyItemChange(ev.Before, ev.After)

	switch transition {
	case aggregate.ItemReportCountChanged:
		slog.Info("report count change, blocking chain trigger", "event_id", ev.EventID)
		return nil
	case aggregate.ItemPerceivedCategoryChanged:
		slog.Info("perceived category change, blocking chain trigger", "event_id", ev.EventID)
		return nil
	case aggregate.ItemGroupAssigned:
		return r.attribute(ctx, ev.After)
	default:
		slog.Info("no actionable item change", "event_id", ev.EventID)
		return nil
	}
}

func (r *Reconciler) attribute(ctx context.Context, item *model.NewsItem) error {
	err := r.store.RunTransaction(ctx, func(tx Tx) error {
		group, err := tx.GetNewsGroup(item.NewsGroupID)
		if err != nil {
			return err
		}
		acct, err := tx.GetAccount(item.Username)
		if err != nil {
			return err
		}

		mergeGroup := false
		if group == nil {
			group = model.NewNewsGroup(item.NewsGroupID)
			group.GroupLeader = item.Username
			group.CreatedAt = item.Date
			mergeGroup = true
		}

		mergeAccount := false
		if acct == nil {
			acct = model.NewAccount(item.Username)
			mergeAccount = true
		}

		sourceCounts, firstContribution := aggregate.MergeDelta(group.SourceCountMap, item.Username, 1)
		tag := aggregate.BehaviorTag(firstContribution, group.Count)

		acct.NewsCount++
		if firstContribution {
			acct.MembershipCount++
		}
		acct.AddTag(tag)

		categoryCounts, newCategoryKey := aggregate.MergeDelta(group.CategoryMap, item.Category, 1)

		group.SourceCountMap = sourceCounts
		group.CategoryMap = categoryCounts
		group.Count++
		if item.Date.After(group.UpdatedAt) {
			group.UpdatedAt = item.Date
		}

		if err := tx.SaveAccount(acct, mergeAccount); err != nil {
			return err
		}
		if err := tx.SaveNewsGroup(group, mergeGroup || firstContribution || newCategoryKey); err != nil {
			return err
		}

		return tx.InsertOutbox(outboxFor(item, r.now()))
	})
	if err != nil {
		slog.Error("attribution transaction failed", "news_item_id", item.ID, "news_group_id", item.NewsGroupID, "error", err)
	}
	return nil
}

func outboxFor(item *model.NewsItem, now time.Time) *model.OutboxRecord {
	image := ""
	if len(item.Photos) > 0 {
		image = item.Photos[0]
	}

	return &model.OutboxRecord{
		ID:          uuid.NewString(),
		Topic:       item.NewsGroupID,
		Title:       item.Username,
		Body:        item.Text,
		Image:       image,
		NewsGroupID: item.NewsGroupID,
		Status:      model.OutboxPending,
		CreatedAt:   now,
	}
}
