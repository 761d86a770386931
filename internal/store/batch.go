package store

import (
	"context"
	"database/sql"

	"newspector/internal/model"
)

// Batch queues account writes and applies them in one transaction. The
// sweep uses it to land one write per account in a single commit.
type Batch struct {
	db    *sql.DB
	saves []batchSave
}

type batchSave struct {
	account *model.Account
	merge   bool
}

func (b *Batch) SaveAccount(a *model.Account, merge bool) {
	copied := *a
	b.saves = append(b.saves, batchSave{account: &copied, merge: merge})
}

func (b *Batch) Commit(ctx context.Context) error {
	if len(b.saves) == 0 {
		return nil
	}

	sqlTx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer sqlTx.Rollback()

	tx := &Tx{tx: sqlTx}
	for _, save := range b.saves {
		if err := tx.SaveAccount(save.account, save.merge); err != nil {
			return err
		}
	}

	return sqlTx.Commit()
}
