package matchdb

import (
	"context"
	"database/sql"
	"fmt"

	"popmatch.poplocal.org/internal/models"
)

const upsertVendor = `
INSERT INTO vendors (
    id, business_name, categories, lat, lng, event_preference,
    max_vendor_fee, demographic, selected_past_popups,
    preferred_size_min, preferred_size_max, preferred_days,
    description, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    business_name = excluded.business_name,
    categories = excluded.categories,
    lat = excluded.lat,
    lng = excluded.lng,
    event_preference = excluded.event_preference,
    max_vendor_fee = excluded.max_vendor_fee,
    demographic = excluded.demographic,
    selected_past_popups = excluded.selected_past_popups,
    preferred_size_min = excluded.preferred_size_min,
    preferred_size_max = excluded.preferred_size_max,
    preferred_days = excluded.preferred_days,
    description = excluded.description,
    updated_at = excluded.updated_at
`

// UpsertVendor inserts or replaces a vendor profile.
func (q *Queries) UpsertVendor(ctx context.Context, vendor *models.Vendor, updatedAt int64) error {
	categories, err := encodeStringList(vendor.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	preference, err := encodeStringList(vendor.EventPreference)
	if err != nil {
		return fmt.Errorf("failed to encode event preference: %w", err)
	}
	demographic, err := encodeStringList(vendor.Demographic)
	if err != nil {
		return fmt.Errorf("failed to encode demographic: %w", err)
	}
	pastPopups, err := encodeStringList(vendor.SelectedPastPopups)
	if err != nil {
		return fmt.Errorf("failed to encode past popups: %w", err)
	}
	preferredDays, err := encodeStringList(vendor.Schedule.PreferredDays)
	if err != nil {
		return fmt.Errorf("failed to encode preferred days: %w", err)
	}

	var lat, lng sql.NullFloat64
	if !vendor.Coordinates.IsZero() {
		lat = sql.NullFloat64{Float64: vendor.Coordinates.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: vendor.Coordinates.Lng, Valid: true}
	}

	_, err = q.db.ExecContext(ctx, upsertVendor,
		vendor.ID,
		vendor.BusinessName,
		categories,
		lat,
		lng,
		preference,
		vendor.Budget.MaxVendorFee,
		demographic,
		pastPopups,
		vendor.PreferredEventSize.Min,
		vendor.PreferredEventSize.Max,
		preferredDays,
		vendor.Description,
		updatedAt,
	)
	return err
}

const getVendor = `
SELECT id, business_name, categories, lat, lng, event_preference,
    max_vendor_fee, demographic, selected_past_popups,
    preferred_size_min, preferred_size_max, preferred_days, description
FROM vendors
WHERE id = ?
`

// GetVendor returns the vendor with the given ID, or sql.ErrNoRows.
func (q *Queries) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	row := q.db.QueryRowContext(ctx, getVendor, id)
	return scanVendor(row)
}

const listVendors = `
SELECT id, business_name, categories, lat, lng, event_preference,
    max_vendor_fee, demographic, selected_past_popups,
    preferred_size_min, preferred_size_max, preferred_days, description
FROM vendors
ORDER BY id
`

// ListVendors returns all vendor profiles.
func (q *Queries) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	rows, err := q.db.QueryContext(ctx, listVendors)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vendors, nil
}

const deleteVendor = `DELETE FROM vendors WHERE id = ?`

// DeleteVendor removes a vendor and, via cascade, its cached ranking.
func (q *Queries) DeleteVendor(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteVendor, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVendor(row rowScanner) (*models.Vendor, error) {
	var (
		vendor        models.Vendor
		categories    string
		lat, lng      sql.NullFloat64
		preference    string
		demographic   string
		pastPopups    string
		preferredDays string
	)

	err := row.Scan(
		&vendor.ID,
		&vendor.BusinessName,
		&categories,
		&lat,
		&lng,
		&preference,
		&vendor.Budget.MaxVendorFee,
		&demographic,
		&pastPopups,
		&vendor.PreferredEventSize.Min,
		&vendor.PreferredEventSize.Max,
		&preferredDays,
		&vendor.Description,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		vendor.Coordinates = models.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}
	if vendor.Categories, err = decodeStringList(categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if vendor.EventPreference, err = decodeStringList(preference); err != nil {
		return nil, fmt.Errorf("failed to decode event preference: %w", err)
	}
	if vendor.Demographic, err = decodeStringList(demographic); err != nil {
		return nil, fmt.Errorf("failed to decode demographic: %w", err)
	}
	if vendor.SelectedPastPopups, err = decodeStringList(pastPopups); err != nil {
		return nil, fmt.Errorf("failed to decode past popups: %w", err)
	}
	if vendor.Schedule.PreferredDays, err = decodeStringList(preferredDays); err != nil {
		return nil, fmt.Errorf("failed to decode preferred days: %w", err)
	}

	return &vendor, nil
}
