package reconcile

import (
	"context"
	"log/slog"

	"newspector/internal/aggregate"
	"newspector/internal/model"
)

// HandleGroupUpdate reacts to a news group change. A dominant-category
// rewrite is our own doing and is blocked. A deactivation settles the
// group's contribution counts into account category maps. Any other
// change re-resolves the dominant category and, when it moved, relabels
// the group's items.
func (r *Reconciler) HandleGroupUpdate(ctx context.Context, ev model.GroupChangeEvent) error {
	fresh, markProcessed := r.guard(ctx, model.EventGroupUpdate, ev.EventID)
	if !fresh {
		slog.Info("duplicate event skipped", "event_id", ev.EventID, "kind", model.EventGroupUpdate)
		return nil
	}
	defer markProcessed()

	switch aggregate.ClassifyGroupChange(ev.Before, ev.After) {
	case aggregate.GroupCategoryChanged:
		slog.Info("category change, blocking chain trigger", "event_id", ev.EventID, "news_group_id", ev.After.ID)
		return nil
	case aggregate.GroupStatusChanged:
		if ev.After.IsActive {
			slog.Info("group reactivated, nothing to settle", "news_group_id", ev.After.ID)
			return nil
		}
		r.settle(ctx, ev.After)
		return nil
	case aggregate.GroupCountersChanged:
		r.relabel(ctx, ev.After.ID)
		return nil
	default:
		slog.Info("no group data", "event_id", ev.EventID)
		return nil
	}
}

// settle folds a closed group's per-account contribution counts into each
// contributor's permanent category map, one transaction per account, then
// clears the group's source map so the counts can never be folded twice.
// Groups still on the sentinel label have nothing to credit.
func (r *Reconciler) settle(ctx context.Context, group *model.NewsGroup) {
	if group.Category == model.SentinelCategory {
		slog.Info("unlabeled group closed, skipping settlement", "news_group_id", group.ID)
		return
	}

	for username, contributions := range group.SourceCountMap {
		err := r.store.RunTransaction(ctx, func(tx Tx) error {
			acct, err := tx.GetAccount(username)
			if err != nil {
				return err
			}

			merge := false
			if acct == nil {
				acct = model.NewAccount(username)
				merge = true
			}

			categoryCounts, wasNew := aggregate.MergeDelta(acct.CategoryMap, group.Category, contributions)
			acct.CategoryMap = categoryCounts

			return tx.SaveAccount(acct, merge || wasNew)
		})
		if err != nil {
			slog.Error("settlement transaction failed", "news_group_id", group.ID, "username", username, "error", err)
		}
	}

	err := r.store.RunTransaction(ctx, func(tx Tx) error {
		return tx.ClearSourceCountMap(group.ID)
	})
	if err != nil {
		slog.Error("error clearing settled source counts", "news_group_id", group.ID, "error", err)
	}
}

// relabel re-resolves the dominant category from the group's current
// counter map and, when the label moved, writes it and propagates the new
// perceived category to every item in the group. Each item update runs in
// its own transaction so one failure cannot hold back the rest.
func (r *Reconciler) relabel(ctx context.Context, groupID string) {
	var dominant string
	changed := false

	err := r.store.RunTransaction(ctx, func(tx Tx) error {
		group, err := tx.GetNewsGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			slog.Warn("news group not found for relabel", "news_group_id", groupID)
			return nil
		}

		dominant = aggregate.ResolveDominantCategory(group.CategoryMap, group.Category)
		if dominant == group.Category {
			return nil
		}
		changed = true
		return tx.SetNewsGroupCategory(groupID, dominant)
	})
	if err != nil {
		slog.Error("relabel transaction failed", "news_group_id", groupID, "error", err)
		return
	}
	if !changed {
		return
	}

	items, err := r.store.ItemsByGroup(ctx, groupID)
	if err != nil {
		slog.Error("error querying items for relabel", "news_group_id", groupID, "error", err)
		return
	}

	for _, item := range items {
		if item.PerceivedCategory == dominant {
			continue
		}
		itemID := item.ID
		err := r.store.RunTransaction(ctx, func(tx Tx) error {
			current, err := tx.GetNewsItem(itemID)
			if err != nil {
				return err
			}
			if current == nil || current.PerceivedCategory == dominant {
				return nil
			}
			return tx.SetNewsItemPerceivedCategory(itemID, dominant)
		})
		if err != nil {
			slog.Error("perceived category update failed", "news_item_id", itemID, "error", err)
		}
	}
}
