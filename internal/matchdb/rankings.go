package matchdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"popmatch.poplocal.org/internal/models"
)

// StoredRanking is a cached ranking result for one vendor.
type StoredRanking struct {
	VendorID   string
	Ranked     []models.RankedEvent
	ComputedAt time.Time
}

const upsertRanking = `
INSERT INTO rankings (vendor_id, payload, computed_at)
VALUES (?, ?, ?)
ON CONFLICT(vendor_id) DO UPDATE SET
    payload = excluded.payload,
    computed_at = excluded.computed_at
`

// UpsertRanking stores a computed ranking for a vendor, replacing any prior
// cached result.
func (q *Queries) UpsertRanking(ctx context.Context, vendorID string, ranked []models.RankedEvent, computedAt time.Time) error {
	payload, err := json.Marshal(ranked)
	if err != nil {
		return fmt.Errorf("failed to encode ranking payload: %w", err)
	}
	_, err = q.db.ExecContext(ctx, upsertRanking, vendorID, string(payload), computedAt.UnixMilli())
	return err
}

const getRanking = `
SELECT vendor_id, payload, computed_at
FROM rankings
WHERE vendor_id = ?
`

// GetRanking returns the cached ranking for a vendor, or sql.ErrNoRows.
func (q *Queries) GetRanking(ctx context.Context, vendorID string) (*StoredRanking, error) {
	row := q.db.QueryRowContext(ctx, getRanking, vendorID)

	var (
		ranking    StoredRanking
		payload    string
		computedAt int64
	)
	if err := row.Scan(&ranking.VendorID, &payload, &computedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &ranking.Ranked); err != nil {
		return nil, fmt.Errorf("failed to decode ranking payload: %w", err)
	}
	ranking.ComputedAt = time.UnixMilli(computedAt).UTC()
	return &ranking, nil
}

const deleteRanking = `DELETE FROM rankings WHERE vendor_id = ?`

// DeleteRanking drops a vendor's cached ranking so the next request
// recomputes it.
func (q *Queries) DeleteRanking(ctx context.Context, vendorID string) error {
	_, err := q.db.ExecContext(ctx, deleteRanking, vendorID)
	return err
}

const deleteAllRankings = `DELETE FROM rankings`

// DeleteAllRankings invalidates every cached ranking. The nightly
// normalization job calls this after rewriting event dates.
func (q *Queries) DeleteAllRankings(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllRankings)
	return err
}
