// Package store is the postgres backing for the document collections.
// Aggregate mutation goes through RunTransaction (serializable isolation,
// retried on serialization failure); plain reads and queries run outside.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"newspector/internal/model"
	"newspector/internal/reconcile"
	"newspector/internal/sweep"
)

const serializationFailure = "40001"

const txRetries = 3

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// RunTransaction runs fn inside a serializable transaction, retrying a
// few times when postgres aborts it with a serialization failure.
func (p *Postgres) RunTransaction(ctx context.Context, fn func(tx reconcile.Tx) error) error {
	var err error
	for attempt := 0; attempt < txRetries; attempt++ {
		err = p.runOnce(ctx, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (p *Postgres) runOnce(ctx context.Context, fn func(tx reconcile.Tx) error) error {
	sqlTx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailure
	}
	return false
}

func (p *Postgres) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	return scanAccount(p.db.QueryRowContext(ctx, accountSelect+` WHERE username = $1`, username))
}

func (p *Postgres) GetNewsGroup(ctx context.Context, id string) (*model.NewsGroup, error) {
	return scanNewsGroup(p.db.QueryRowContext(ctx, groupSelect+` WHERE id = $1`, id))
}

func (p *Postgres) ItemsByGroup(ctx context.Context, groupID string) ([]model.NewsItem, error) {
	rows, err := p.db.QueryContext(ctx, itemSelect+` WHERE news_group_id = $1`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.NewsItem
	for rows.Next() {
		item, err := scanNewsItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (p *Postgres) ActiveGroupsBefore(ctx context.Context, cutoff time.Time) ([]model.NewsGroup, error) {
	rows, err := p.db.QueryContext(ctx, groupSelect+`
		WHERE is_active = TRUE AND created_at <= $1
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.NewsGroup
	for rows.Next() {
		group, err := scanNewsGroupRow(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// DeactivateGroup flips the group inactive and clears its source counts
// in the same statement, so settlement of an already swept group folds
// nothing.
func (p *Postgres) DeactivateGroup(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE news_groups SET is_active = FALSE, source_count_map = '{}' WHERE id = $1
	`, id)
	return err
}

func (p *Postgres) NewBatch() sweep.Batch {
	return &Batch{db: p.db}
}

func (p *Postgres) PendingNotifications(ctx context.Context, limit int) ([]model.OutboxRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, topic, title, body, image, news_group_id, status, message_id, created_at, sent_at
		FROM notification_outbox
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`, model.OutboxPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.OutboxRecord
	for rows.Next() {
		var rec model.OutboxRecord
		var sentAt sql.NullTime
		err := rows.Scan(&rec.ID, &rec.Topic, &rec.Title, &rec.Body, &rec.Image,
			&rec.NewsGroupID, &rec.Status, &rec.MessageID, &rec.CreatedAt, &sentAt)
		if err != nil {
			return nil, err
		}
		if sentAt.Valid {
			rec.SentAt = &sentAt.Time
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (p *Postgres) MarkNotificationSent(ctx context.Context, id, messageID string) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE notification_outbox SET status = $1, message_id = $2, sent_at = now() WHERE id = $3
	`, model.OutboxSent, messageID, id)
	return err
}

func (p *Postgres) MarkNotificationFailed(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE notification_outbox SET status = $1 WHERE id = $2
	`, model.OutboxFailed, id)
	return err
}

const accountSelect = `
	SELECT username, category_map, news_count, news_group_membership_count,
		news_group_leadership_count, first_comer, close_second, late_comer,
		slow_poke, follow_up, like_count, dislike_count, report_count
	FROM accounts`

const groupSelect = `
	SELECT id, category_map, source_count_map, category, is_active, count,
		group_leader, created_at, updated_at
	FROM news_groups`

const itemSelect = `
	SELECT id, username, news_group_id, category, perceived_category,
		report_count, date, text_content, photos
	FROM news_items`

type scannable interface {
	Scan(dest ...any) error
}

func scanAccount(row scannable) (*model.Account, error) {
	var a model.Account
	var categoryMap []byte

	err := row.Scan(&a.Username, &categoryMap, &a.NewsCount, &a.MembershipCount,
		&a.LeadershipCount, &a.FirstComer, &a.CloseSecond, &a.LateComer,
		&a.SlowPoke, &a.FollowUp, &a.LikeCount, &a.DislikeCount, &a.ReportCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(categoryMap, &a.CategoryMap); err != nil {
		return nil, err
	}

	return &a, nil
}

func scanNewsGroup(row *sql.Row) (*model.NewsGroup, error) {
	group, err := scanNewsGroupRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return group, err
}

func scanNewsGroupRow(row scannable) (*model.NewsGroup, error) {
	var g model.NewsGroup
	var categoryMap, sourceCountMap []byte

	err := row.Scan(&g.ID, &categoryMap, &sourceCountMap, &g.Category, &g.IsActive,
		&g.Count, &g.GroupLeader, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(categoryMap, &g.CategoryMap); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sourceCountMap, &g.SourceCountMap); err != nil {
		return nil, err
	}

	return &g, nil
}

func scanNewsItem(row *sql.Row) (*model.NewsItem, error) {
	item, err := scanNewsItemRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

func scanNewsItemRow(row scannable) (*model.NewsItem, error) {
	var item model.NewsItem

	err := row.Scan(&item.ID, &item.Username, &item.NewsGroupID, &item.Category,
		&item.PerceivedCategory, &item.ReportCount, &item.Date, &item.Text,
		pq.Array(&item.Photos))
	if err != nil {
		return nil, err
	}

	return &item, nil
}
