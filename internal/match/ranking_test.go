package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popmatch.poplocal.org/internal/models"
)

func TestRankEventsForVendorOrdersByScore(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	vendor := seedVendor(t, manager, "vendor-1")

	// Brooklyn fits the vendor; Chicago is too far and this one also blows
	// the budget.
	seedEvent(t, manager, "close-fit", "Brooklyn", "NY", 100)
	seedEvent(t, manager, "far-expensive", "Chicago", "IL", 900)

	ranked, err := manager.RankEventsForVendor(ctx, vendor.ID, 0, false)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "close-fit", ranked[0].Event.ID)
	assert.Equal(t, "far-expensive", ranked[1].Event.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)

	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, models.MaxTotalScore)
		assert.InDelta(t, r.Breakdown.Sum(), r.Score, 0.0001)
	}
}

func TestRankEventsForVendorUnknownVendor(t *testing.T) {
	manager := newTestManager(t)

	_, err := manager.RankEventsForVendor(context.Background(), "missing", 0, false)
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestRankEventsForVendorLimit(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	vendor := seedVendor(t, manager, "vendor-1")
	seedEvent(t, manager, "a", "Brooklyn", "NY", 100)
	seedEvent(t, manager, "b", "Philadelphia", "PA", 100)
	seedEvent(t, manager, "c", "Boston", "MA", 100)

	ranked, err := manager.RankEventsForVendor(ctx, vendor.ID, 2, false)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestRankEventsForVendorUsesCache(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	vendor := seedVendor(t, manager, "vendor-1")
	seedEvent(t, manager, "a", "Brooklyn", "NY", 100)

	ranked, err := manager.RankEventsForVendor(ctx, vendor.ID, 0, false)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	// Add an event behind the cache's back. A plain request still serves
	// the stale cached ranking; forceRefresh recomputes.
	require.NoError(t, manager.DB.Queries.UpsertEvent(ctx, seededEventModel("b"), 1000))

	ranked, err = manager.RankEventsForVendor(ctx, vendor.ID, 0, false)
	require.NoError(t, err)
	assert.Len(t, ranked, 1)

	ranked, err = manager.RankEventsForVendor(ctx, vendor.ID, 0, true)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestUpsertEventInvalidatesRankingCache(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	vendor := seedVendor(t, manager, "vendor-1")
	seedEvent(t, manager, "a", "Brooklyn", "NY", 100)

	_, err := manager.RankEventsForVendor(ctx, vendor.ID, 0, false)
	require.NoError(t, err)

	seedEvent(t, manager, "b", "Philadelphia", "PA", 100)

	ranked, err := manager.RankEventsForVendor(ctx, vendor.ID, 0, false)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestScoreEventForVendor(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	vendor := seedVendor(t, manager, "vendor-1")
	event := seedEvent(t, manager, "a", "Brooklyn", "NY", 100)

	result, err := manager.ScoreEventForVendor(ctx, vendor.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, result.Event.ID)
	assert.InDelta(t, result.Breakdown.Sum(), result.Score, 0.0001)
	assert.Greater(t, result.Breakdown.LocationScore, 19.0, "Brooklyn is a few miles from the vendor")

	_, err = manager.ScoreEventForVendor(ctx, vendor.ID, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func seededEventModel(id string) *models.Event {
	return &models.Event{
		ID:           id,
		Name:         "Fall Market " + id,
		Type:         []string{"Market"},
		VendorFee:    100,
		Demographics: []string{"Families"},
		Categories:   []string{"Home Goods"},
		Location:     models.Location{City: "Brooklyn", State: "NY"},
		Headcount:    300,
		Description:  "A fall market with local makers",
	}
}
