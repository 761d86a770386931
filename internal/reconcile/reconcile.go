// Package reconcile sequences each change event through the same steps:
// dedup check, classification, transactional aggregate update, and an
// unconditional processed mark. Store failures are logged and swallowed;
// a handler never fails its invoker.
package reconcile

import (
	"context"
	"time"

	"newspector/internal/ledger"
	"newspector/internal/model"
)

// Tx is the transactional view of the document store. Reads inside a
// transaction return (nil, nil) for missing documents; save methods take
// a merge flag selecting a creating upsert over a targeted update, per
// the counter-engine contract.
type Tx interface {
	GetAccount(username string) (*model.Account, error)
	GetNewsGroup(id string) (*model.NewsGroup, error)
	GetNewsItem(id string) (*model.NewsItem, error)
	SaveAccount(a *model.Account, merge bool) error
	SaveNewsGroup(g *model.NewsGroup, merge bool) error
	SetNewsGroupCategory(id, category string) error
	SetNewsItemPerceivedCategory(id, category string) error
	ClearSourceCountMap(groupID string) error
	InsertOutbox(rec *model.OutboxRecord) error
}

type Store interface {
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error
	ItemsByGroup(ctx context.Context, groupID string) ([]model.NewsItem, error)
}

type Reconciler struct {
	store  Store
	ledger ledger.Ledger
	now    func() time.Time
}

func New(store Store, ledger ledger.Ledger) *Reconciler {
	return &Reconciler{
		store:  store,
		ledger: ledger,
		now:    time.Now,
	}
}

// guard short-circuits replayed events and arranges the unconditional
// processed mark. The returned func must be deferred by the caller.
func (r *Reconciler) guard(ctx context.Context, kind model.EventKind, eventID string) (bool, func()) {
	if r.ledger.IsProcessed(ctx, string(kind), eventID) {
		return false, func() {}
	}
	return true, func() {
		r.ledger.MarkProcessed(ctx, string(kind), eventID, r.now())
	}
}
