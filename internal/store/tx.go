package store

import (
	"database/sql"
	"encoding/json"

	"newspector/internal/model"
	"newspector/internal/reconcile"
)

// Tx wraps a serializable sql transaction with the document operations
// the orchestrators need. Save methods honor the merge flag: a merge is
// an upsert for documents first observed absent, an update is a targeted
// write that presumes the row exists.
type Tx struct {
	tx *sql.Tx
}

var _ reconcile.Tx = (*Tx)(nil)

func (t *Tx) GetAccount(username string) (*model.Account, error) {
	return scanAccount(t.tx.QueryRow(accountSelect+` WHERE username = $1`, username))
}

func (t *Tx) GetNewsGroup(id string) (*model.NewsGroup, error) {
	return scanNewsGroup(t.tx.QueryRow(groupSelect+` WHERE id = $1`, id))
}

func (t *Tx) GetNewsItem(id string) (*model.NewsItem, error) {
	return scanNewsItem(t.tx.QueryRow(itemSelect+` WHERE id = $1`, id))
}

func (t *Tx) SaveAccount(a *model.Account, merge bool) error {
	categoryMap, err := json.Marshal(a.CategoryMap)
	if err != nil {
		return err
	}

	if merge {
		_, err = t.tx.Exec(accountUpsert, a.Username, categoryMap, a.NewsCount,
			a.MembershipCount, a.LeadershipCount, a.FirstComer, a.CloseSecond,
			a.LateComer, a.SlowPoke, a.FollowUp, a.LikeCount, a.DislikeCount, a.ReportCount)
		return err
	}

	_, err = t.tx.Exec(accountUpdate, a.Username, categoryMap, a.NewsCount,
		a.MembershipCount, a.LeadershipCount, a.FirstComer, a.CloseSecond,
		a.LateComer, a.SlowPoke, a.FollowUp, a.LikeCount, a.DislikeCount, a.ReportCount)
	return err
}

func (t *Tx) SaveNewsGroup(g *model.NewsGroup, merge bool) error {
	categoryMap, err := json.Marshal(g.CategoryMap)
	if err != nil {
		return err
	}
	sourceCountMap, err := json.Marshal(g.SourceCountMap)
	if err != nil {
		return err
	}

	if merge {
		_, err = t.tx.Exec(`
			INSERT INTO news_groups (id, category_map, source_count_map, category, is_active, count, group_leader, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				category_map = EXCLUDED.category_map,
				source_count_map = EXCLUDED.source_count_map,
				count = EXCLUDED.count,
				updated_at = EXCLUDED.updated_at
		`, g.ID, categoryMap, sourceCountMap, g.Category, g.IsActive, g.Count, g.GroupLeader, g.CreatedAt, g.UpdatedAt)
		return err
	}

	_, err = t.tx.Exec(`
		UPDATE news_groups
		SET category_map = $2, source_count_map = $3, count = $4, updated_at = $5
		WHERE id = $1
	`, g.ID, categoryMap, sourceCountMap, g.Count, g.UpdatedAt)
	return err
}

func (t *Tx) SetNewsGroupCategory(id, category string) error {
	_, err := t.tx.Exec(`
		UPDATE news_groups SET category = $2 WHERE id = $1
	`, id, category)
	return err
}

func (t *Tx) SetNewsItemPerceivedCategory(id, category string) error {
	_, err := t.tx.Exec(`
		UPDATE news_items SET perceived_category = $2 WHERE id = $1
	`, id, category)
	return err
}

func (t *Tx) ClearSourceCountMap(groupID string) error {
	_, err := t.tx.Exec(`
		UPDATE news_groups SET source_count_map = '{}' WHERE id = $1
	`, groupID)
	return err
}

func (t *Tx) InsertOutbox(rec *model.OutboxRecord) error {
	_, err := t.tx.Exec(`
		INSERT INTO notification_outbox (id, topic, title, body, image, news_group_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.Topic, rec.Title, rec.Body, rec.Image, rec.NewsGroupID, rec.Status, rec.CreatedAt)
	return err
}

const accountUpsert = `
	INSERT INTO accounts (username, category_map, news_count, news_group_membership_count,
		news_group_leadership_count, first_comer, close_second, late_comer,
		slow_poke, follow_up, like_count, dislike_count, report_count)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (username) DO UPDATE SET
		category_map = EXCLUDED.category_map,
		news_count = EXCLUDED.news_count,
		news_group_membership_count = EXCLUDED.news_group_membership_count,
		news_group_leadership_count = EXCLUDED.news_group_leadership_count,
		first_comer = EXCLUDED.first_comer,
		close_second = EXCLUDED.close_second,
		late_comer = EXCLUDED.late_comer,
		slow_poke = EXCLUDED.slow_poke,
		follow_up = EXCLUDED.follow_up,
		like_count = EXCLUDED.like_count,
		dislike_count = EXCLUDED.dislike_count,
		report_count = EXCLUDED.report_count`

const accountUpdate = `
	UPDATE accounts
	SET category_map = $2, news_count = $3, news_group_membership_count = $4,
		news_group_leadership_count = $5, first_comer = $6, close_second = $7,
		late_comer = $8, slow_poke = $9, follow_up = $10, like_count = $11,
		dislike_count = $12, report_count = $13
	WHERE username = $1`
