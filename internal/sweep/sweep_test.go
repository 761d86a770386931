package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"newspector/internal/model"
)

type fakeBatch struct {
	store   *fakeStore
	saves   []*model.Account
	commits int
}

func (b *fakeBatch) SaveAccount(a *model.Account, merge bool) {
	copied := *a
	b.saves = append(b.saves, &copied)
}

func (b *fakeBatch) Commit(ctx context.Context) error {
	b.commits++
	for _, a := range b.saves {
		b.store.accounts[a.Username] = a
	}
	return nil
}

type fakeStore struct {
	groups        []model.NewsGroup
	accounts      map[string]*model.Account
	deactivated   []string
	deactivateErr error
	batch         *fakeBatch
}

func newFakeStore(groups ...model.NewsGroup) *fakeStore {
	return &fakeStore{
		groups:   groups,
		accounts: map[string]*model.Account{},
	}
}

func (f *fakeStore) ActiveGroupsBefore(ctx context.Context, cutoff time.Time) ([]model.NewsGroup, error) {
	var matched []model.NewsGroup
	for _, g := range f.groups {
		if g.IsActive && !g.CreatedAt.After(cutoff) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func (f *fakeStore) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	a, ok := f.accounts[username]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) DeactivateGroup(ctx context.Context, id string) error {
	if f.deactivateErr != nil {
		return f.deactivateErr
	}
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeStore) NewBatch() Batch {
	f.batch = &fakeBatch{store: f}
	return f.batch
}

func staleGroup(id, category string, sources model.SourceCountMap) model.NewsGroup {
	return model.NewsGroup{
		ID:             id,
		Category:       category,
		SourceCountMap: sources,
		IsActive:       true,
		CreatedAt:      time.Now().Add(-2 * time.Hour),
	}
}

func TestSweepFoldsOverlappingGroups(t *testing.T) {
	// reference double-entry computation:
	// alice: 2x Sports (g1) + 1x Politics (g2) ; bob: 1x Sports + 3x Politics
	store := newFakeStore(
		staleGroup("g1", "Sports", model.SourceCountMap{"alice": 2, "bob": 1}),
		staleGroup("g2", "Politics", model.SourceCountMap{"alice": 1, "bob": 3}),
	)
	s := New(store, time.Hour)

	err := s.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, int64(2), store.accounts["alice"].CategoryMap["Sports"])
	assert.Equal(t, int64(1), store.accounts["alice"].CategoryMap["Politics"])
	assert.Equal(t, int64(1), store.accounts["bob"].CategoryMap["Sports"])
	assert.Equal(t, int64(3), store.accounts["bob"].CategoryMap["Politics"])

	// one batched commit, one write per account
	assert.Equal(t, 1, store.batch.commits)
	assert.Equal(t, 2, len(store.batch.saves))
	assert.Equal(t, 2, len(store.deactivated))
}

func TestSweepAddsToExistingAccountCounts(t *testing.T) {
	store := newFakeStore(staleGroup("g1", "Sports", model.SourceCountMap{"alice": 2}))
	store.accounts["alice"] = &model.Account{
		Username:    "alice",
		CategoryMap: model.CategoryMap{"Sports": 5, "Economy": 1},
	}
	s := New(store, time.Hour)

	err := s.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, int64(7), store.accounts["alice"].CategoryMap["Sports"])
	assert.Equal(t, int64(1), store.accounts["alice"].CategoryMap["Economy"])
}

func TestSweepSkipsSentinelGroupsButStillDeactivates(t *testing.T) {
	store := newFakeStore(staleGroup("g1", model.SentinelCategory, model.SourceCountMap{"alice": 2}))
	s := New(store, time.Hour)

	err := s.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"g1"}, store.deactivated)
	_, exists := store.accounts["alice"]
	assert.Equal(t, false, exists)
}

func TestSweepIgnoresFreshGroups(t *testing.T) {
	fresh := staleGroup("g1", "Sports", model.SourceCountMap{"alice": 1})
	fresh.CreatedAt = time.Now()
	store := newFakeStore(fresh)
	s := New(store, time.Hour)

	err := s.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(store.deactivated))
}

func TestSweepFoldProceedsWhenDeactivationFails(t *testing.T) {
	store := newFakeStore(staleGroup("g1", "Sports", model.SourceCountMap{"alice": 1}))
	store.deactivateErr = errors.New("store down")
	s := New(store, time.Hour)

	err := s.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, int64(1), store.accounts["alice"].CategoryMap["Sports"])
}
