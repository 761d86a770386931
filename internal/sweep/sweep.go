// Package sweep ages out stale news groups. Each run queries active
// groups past the age threshold, folds their contribution counts into
// per-account category deltas in memory, deactivates the groups, and
// applies all account deltas in one batched commit.
package sweep

import (
	"context"
	"log/slog"
	"time"

	"newspector/internal/aggregate"
	"newspector/internal/model"
)

type Batch interface {
	SaveAccount(a *model.Account, merge bool)
	Commit(ctx context.Context) error
}

type Store interface {
	ActiveGroupsBefore(ctx context.Context, cutoff time.Time) ([]model.NewsGroup, error)
	GetAccount(ctx context.Context, username string) (*model.Account, error)
	// DeactivateGroup flips is_active off and clears the group's source
	// count map so a later settlement cannot fold the same counts again.
	DeactivateGroup(ctx context.Context, id string) error
	NewBatch() Batch
}

type Sweeper struct {
	store        Store
	ageThreshold time.Duration
	now          func() time.Time
}

func New(store Store, ageThreshold time.Duration) *Sweeper {
	return &Sweeper{
		store:        store,
		ageThreshold: ageThreshold,
		now:          time.Now,
	}
}

// Run performs one sweep pass. Deactivation is unconditional per group,
// independent of whether its fold lands in the final commit.
func (s *Sweeper) Run(ctx context.Context) error {
	cutoff := s.now().Add(-s.ageThreshold)

	groups, err := s.store.ActiveGroupsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("error querying stale news groups", "error", err)
		return err
	}
	if len(groups) == 0 {
		slog.Info("no stale news groups")
		return nil
	}

	deltas := map[string]model.CategoryMap{}
	for _, group := range groups {
		if group.Category != model.SentinelCategory {
			for username, contributions := range group.SourceCountMap {
				acc := deltas[username]
				acc, _ = aggregate.MergeDelta(acc, group.Category, contributions)
				deltas[username] = acc
			}
		} else {
			slog.Info("unlabeled group aged out without settlement", "news_group_id", group.ID)
		}

		if err := s.store.DeactivateGroup(ctx, group.ID); err != nil {
			slog.Error("error deactivating news group", "news_group_id", group.ID, "error", err)
		}
	}

	if len(deltas) == 0 {
		return nil
	}

	batch := s.store.NewBatch()
	for username, categoryDeltas := range deltas {
		acct, err := s.store.GetAccount(ctx, username)
		if err != nil {
			slog.Error("error reading account for sweep", "username", username, "error", err)
			continue
		}

		merge := false
		if acct == nil {
			acct = model.NewAccount(username)
			merge = true
		}

		for category, delta := range categoryDeltas {
			merged, wasNew := aggregate.MergeDelta(acct.CategoryMap, category, delta)
			acct.CategoryMap = merged
			merge = merge || wasNew
		}

		batch.SaveAccount(acct, merge)
	}

	if err := batch.Commit(ctx); err != nil {
		slog.Error("error committing sweep batch", "error", err)
		return err
	}

	slog.Info("sweep complete", "groups", len(groups), "accounts", len(deltas))
	return nil
}
