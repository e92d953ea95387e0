package match

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"popmatch.poplocal.org/internal/models"
)

// SeedData is the JSON shape of a bootstrap data file.
type SeedData struct {
	Vendors []*models.Vendor `json:"vendors"`
	Events  []*models.Event  `json:"events"`
}

// ImportFromFile loads vendors and events from a JSON seed file inside one
// transaction, so a bad entry leaves the database untouched. Events with a
// raw date string but no resolved range are normalized inline during import.
func (manager *Manager) ImportFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedData
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	tx, err := manager.DB.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := manager.DB.Queries.WithTx(tx)
	now := manager.clk.Now().UnixMilli()
	parser := manager.Parser()

	for _, vendor := range seed.Vendors {
		if vendor.ID == "" {
			return fmt.Errorf("seed vendor %q has no ID", vendor.BusinessName)
		}
		if err := queries.UpsertVendor(ctx, vendor, now); err != nil {
			return fmt.Errorf("failed to import vendor %s: %w", vendor.ID, err)
		}
	}

	for _, event := range seed.Events {
		if event.ID == "" {
			return fmt.Errorf("seed event %q has no ID", event.Name)
		}
		if !event.HasDateRange() && event.RawDate != "" {
			parsed, rule := parser.ParseWithRule(event.RawDate)
			recordParseOutcome(rule)
			if event.StartDate == nil {
				event.StartDate = parsed.Start
			}
			if event.EndDate == nil {
				event.EndDate = parsed.End
			}
		}
		if err := queries.UpsertEvent(ctx, event, now); err != nil {
			return fmt.Errorf("failed to import event %s: %w", event.ID, err)
		}
	}

	return tx.Commit()
}
