package reconcile

import (
	"context"
	"log/slog"

	"newspector/internal/model"
)

// HandleGroupCreate credits the group leader, the account whose item
// opened the group, with a leadership point.
func (r *Reconciler) HandleGroupCreate(ctx context.Context, ev model.GroupCreateEvent) error {
	fresh, markProcessed := r.guard(ctx, model.EventGroupCreate, ev.EventID)
	if !fresh {
		slog.Info("duplicate event skipped", "event_id", ev.EventID, "kind", model.EventGroupCreate)
		return nil
	}
	defer markProcessed()

	if ev.Group == nil || ev.Group.GroupLeader == "" {
		slog.Info("group create event without leader", "event_id", ev.EventID)
		return nil
	}

	leader := ev.Group.GroupLeader
	err := r.store.RunTransaction(ctx, func(tx Tx) error {
		acct, err := tx.GetAccount(leader)
		if err != nil {
			return err
		}

		merge := false
		if acct == nil {
			acct = model.NewAccount(leader)
			merge = true
		}

		acct.LeadershipCount++
		return tx.SaveAccount(acct, merge)
	})
	if err != nil {
		slog.Error("leadership transaction failed", "username", leader, "error", err)
	}
	return nil
}
