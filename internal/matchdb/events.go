package matchdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"popmatch.poplocal.org/internal/models"
)

const upsertEvent = `
INSERT INTO events (
    id, name, event_types, vendor_fee, demographics, categories,
    city, state, raw_date, start_date, end_date, headcount,
    description, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    event_types = excluded.event_types,
    vendor_fee = excluded.vendor_fee,
    demographics = excluded.demographics,
    categories = excluded.categories,
    city = excluded.city,
    state = excluded.state,
    raw_date = excluded.raw_date,
    start_date = excluded.start_date,
    end_date = excluded.end_date,
    headcount = excluded.headcount,
    description = excluded.description,
    updated_at = excluded.updated_at
`

// UpsertEvent inserts or replaces an event listing. Date bounds persist as
// Unix milliseconds so range queries stay index-friendly.
func (q *Queries) UpsertEvent(ctx context.Context, event *models.Event, updatedAt int64) error {
	eventTypes, err := encodeStringList(event.Type)
	if err != nil {
		return fmt.Errorf("failed to encode event types: %w", err)
	}
	demographics, err := encodeStringList(event.Demographics)
	if err != nil {
		return fmt.Errorf("failed to encode demographics: %w", err)
	}
	categories, err := encodeStringList(event.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	_, err = q.db.ExecContext(ctx, upsertEvent,
		event.ID,
		event.Name,
		eventTypes,
		event.VendorFee,
		demographics,
		categories,
		event.Location.City,
		event.Location.State,
		event.RawDate,
		nullableMillis(event.StartDate),
		nullableMillis(event.EndDate),
		event.Headcount,
		event.Description,
		updatedAt,
	)
	return err
}

const eventColumns = `id, name, event_types, vendor_fee, demographics, categories,
    city, state, raw_date, start_date, end_date, headcount, description`

const getEvent = `
SELECT ` + eventColumns + `
FROM events
WHERE id = ?
`

// GetEvent returns the event with the given ID, or sql.ErrNoRows.
func (q *Queries) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	row := q.db.QueryRowContext(ctx, getEvent, id)
	return scanEvent(row)
}

const listEvents = `
SELECT ` + eventColumns + `
FROM events
ORDER BY id
`

// ListEvents returns all event listings.
func (q *Queries) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return q.queryEvents(ctx, listEvents)
}

const listEventsEndingAfter = `
SELECT ` + eventColumns + `
FROM events
WHERE end_date IS NULL OR end_date >= ?
ORDER BY id
`

// ListEventsEndingAfter returns events whose range has not yet ended at the
// given instant. Events with no resolved range are included so that
// unparseable listings are never silently hidden from ranking.
func (q *Queries) ListEventsEndingAfter(ctx context.Context, instant time.Time) ([]*models.Event, error) {
	return q.queryEvents(ctx, listEventsEndingAfter, instant.UnixMilli())
}

const listEventsMissingDates = `
SELECT ` + eventColumns + `
FROM events
WHERE raw_date != '' AND (start_date IS NULL OR end_date IS NULL)
ORDER BY id
`

// ListEventsMissingDates returns events that carry a raw date string but no
// fully resolved range. These are the normalization backlog.
func (q *Queries) ListEventsMissingDates(ctx context.Context) ([]*models.Event, error) {
	return q.queryEvents(ctx, listEventsMissingDates)
}

const updateEventDates = `
UPDATE events
SET start_date = ?, end_date = ?, updated_at = ?
WHERE id = ?
`

// UpdateEventDates records a normalized date range for an event. Either
// bound may be nil; a partial parse result persists whatever side resolved.
func (q *Queries) UpdateEventDates(ctx context.Context, id string, start, end *time.Time, updatedAt int64) error {
	result, err := q.db.ExecContext(ctx, updateEventDates,
		nullableMillis(start),
		nullableMillis(end),
		updatedAt,
		id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const deleteEvent = `DELETE FROM events WHERE id = ?`

func (q *Queries) DeleteEvent(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteEvent, id)
	return err
}

func (q *Queries) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		event        models.Event
		eventTypes   string
		demographics string
		categories   string
		start, end   sql.NullInt64
	)

	err := row.Scan(
		&event.ID,
		&event.Name,
		&eventTypes,
		&event.VendorFee,
		&demographics,
		&categories,
		&event.Location.City,
		&event.Location.State,
		&event.RawDate,
		&start,
		&end,
		&event.Headcount,
		&event.Description,
	)
	if err != nil {
		return nil, err
	}

	if event.Type, err = decodeStringList(eventTypes); err != nil {
		return nil, fmt.Errorf("failed to decode event types: %w", err)
	}
	if event.Demographics, err = decodeStringList(demographics); err != nil {
		return nil, fmt.Errorf("failed to decode demographics: %w", err)
	}
	if event.Categories, err = decodeStringList(categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	event.StartDate = millisToTime(start)
	event.EndDate = millisToTime(end)

	return &event, nil
}

func nullableMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func millisToTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64).UTC()
	return &t
}
