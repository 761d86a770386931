package reconcile

import (
	"context"
	"log/slog"

	"newspector/internal/model"
)

// HandleVote attributes a like or dislike to the voted item's author.
func (r *Reconciler) HandleVote(ctx context.Context, ev model.VoteEvent) error {
	fresh, markProcessed := r.guard(ctx, model.EventVote, ev.EventID)
	if !fresh {
		slog.Info("duplicate event skipped", "event_id", ev.EventID, "kind", model.EventVote)
		return nil
	}
	defer markProcessed()

	err := r.store.RunTransaction(ctx, func(tx Tx) error {
		item, err := tx.GetNewsItem(ev.NewsItemID)
		if err != nil {
			return err
		}
		if item == nil {
			slog.Warn("vote on unknown news item", "news_item_id", ev.NewsItemID)
			return nil
		}

		acct, err := tx.GetAccount(item.Username)
		if err != nil {
			return err
		}

		merge := false
		if acct == nil {
			acct = model.NewAccount(item.Username)
			merge = true
		}

		if ev.Up {
			acct.LikeCount++
		} else {
			acct.DislikeCount++
		}
		return tx.SaveAccount(acct, merge)
	})
	if err != nil {
		slog.Error("vote transaction failed", "news_item_id", ev.NewsItemID, "error", err)
	}
	return nil
}

// HandleReport attributes a report to the reported item's author. The
// item's own report counter is maintained upstream; its change event is
// the one the item-update handler blocks.
func (r *Reconciler) HandleReport(ctx context.Context, ev model.ReportEvent) error {
	fresh, markProcessed := r.guard(ctx, model.EventReport, ev.EventID)
	if !fresh {
		slog.Info("duplicate event skipped", "event_id", ev.EventID, "kind", model.EventReport)
		return nil
	}
	defer markProcessed()

	err := r.store.RunTransaction(ctx, func(tx Tx) error {
		item, err := tx.GetNewsItem(ev.NewsItemID)
		if err != nil {
			return err
		}
		if item == nil {
			slog.Warn("report on unknown news item", "news_item_id", ev.NewsItemID)
			return nil
		}

		acct, err := tx.GetAccount(item.Username)
		if err != nil {
			return err
		}

		merge := false
		if acct == nil {
			acct = model.NewAccount(item.Username)
			merge = true
		}

		acct.ReportCount++
		return tx.SaveAccount(acct, merge)
	})
	if err != nil {
		slog.Error("report transaction failed", "news_item_id", ev.NewsItemID, "error", err)
	}
	return nil
}
