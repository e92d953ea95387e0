package matchdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popmatch.poplocal.org/internal/models"
)

func testVendor(id string) *models.Vendor {
	return &models.Vendor{
		ID:                 id,
		BusinessName:       "Brooklyn Candle Studio",
		Categories:         []string{"Home Goods", "Gifts"},
		Coordinates:        models.Coordinates{Lat: 40.6782, Lng: -73.9442},
		EventPreference:    []string{"Market"},
		Budget:             models.Budget{MaxVendorFee: 200},
		Demographic:        []string{"Families"},
		SelectedPastPopups: []string{"Smorgasburg Winter Market"},
		PreferredEventSize: models.SizeRange{Min: 100, Max: 500},
		Schedule:           models.Schedule{PreferredDays: []string{"Saturday", "Sunday"}},
		Description:        "Hand-poured soy candles",
	}
}

func TestVendorRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	vendor := testVendor("vendor-1")
	require.NoError(t, client.Queries.UpsertVendor(ctx, vendor, 1000))

	got, err := client.Queries.GetVendor(ctx, "vendor-1")
	require.NoError(t, err)
	assert.Equal(t, vendor, got)
}

func TestVendorUpsertReplaces(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	vendor := testVendor("vendor-1")
	require.NoError(t, client.Queries.UpsertVendor(ctx, vendor, 1000))

	vendor.BusinessName = "Renamed Studio"
	vendor.Budget.MaxVendorFee = 350
	require.NoError(t, client.Queries.UpsertVendor(ctx, vendor, 2000))

	got, err := client.Queries.GetVendor(ctx, "vendor-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Studio", got.BusinessName)
	assert.Equal(t, 350.0, got.Budget.MaxVendorFee)

	vendors, err := client.Queries.ListVendors(ctx)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
}

func TestVendorWithoutCoordinates(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	vendor := testVendor("vendor-1")
	vendor.Coordinates = models.Coordinates{}
	require.NoError(t, client.Queries.UpsertVendor(ctx, vendor, 1000))

	got, err := client.Queries.GetVendor(ctx, "vendor-1")
	require.NoError(t, err)
	assert.True(t, got.Coordinates.IsZero())
}

func TestGetVendorNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Queries.GetVendor(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteVendorCascadesRanking(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	vendor := testVendor("vendor-1")
	require.NoError(t, client.Queries.UpsertVendor(ctx, vendor, 1000))
	require.NoError(t, client.Queries.UpsertRanking(ctx, "vendor-1", nil, testTime()))

	require.NoError(t, client.Queries.DeleteVendor(ctx, "vendor-1"))

	_, err := client.Queries.GetRanking(ctx, "vendor-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
