package match

import (
	"context"
	"log/slog"

	"popmatch.poplocal.org/internal/dateparse"
)

// NormalizeResult summarizes one normalization sweep over the event backlog.
type NormalizeResult struct {
	Scanned    int `json:"scanned"`
	Normalized int `json:"normalized"`
	Unparsed   int `json:"unparsed"`
}

// NormalizeEventDates parses the raw date string of every event that still
// lacks a resolved range and persists what it can. Partial parses persist
// too. When anything changed, every cached ranking is invalidated since the
// days factor depends on event dates.
func (manager *Manager) NormalizeEventDates(ctx context.Context) (NormalizeResult, error) {
	var result NormalizeResult

	events, err := manager.DB.Queries.ListEventsMissingDates(ctx)
	if err != nil {
		return result, err
	}
	result.Scanned = len(events)

	now := manager.clk.Now().UnixMilli()
	parser := manager.Parser()
	for _, event := range events {
		parsed, rule := parser.ParseWithRule(event.RawDate)
		recordParseOutcome(rule)

		if parsed.IsEmpty() {
			result.Unparsed++
			slog.Debug("date string did not normalize",
				slog.String("event_id", event.ID),
				slog.String("raw", event.RawDate))
			continue
		}

		start := event.StartDate
		if start == nil {
			start = parsed.Start
		}
		end := event.EndDate
		if end == nil {
			end = parsed.End
		}

		if err := manager.DB.Queries.UpdateEventDates(ctx, event.ID, start, end, now); err != nil {
			return result, err
		}
		result.Normalized++
	}

	if result.Normalized > 0 {
		if err := manager.DB.Queries.DeleteAllRankings(ctx); err != nil {
			return result, err
		}
	}

	slog.Info("date normalization sweep complete",
		slog.Int("scanned", result.Scanned),
		slog.Int("normalized", result.Normalized),
		slog.Int("unparsed", result.Unparsed))

	return result, nil
}

// NormalizeRaw parses one raw date string and reports which recognizer
// fired. It backs the normalize-date endpoint.
func (manager *Manager) NormalizeRaw(raw string) (dateparse.ParsedRange, string) {
	parsed, rule := manager.Parser().ParseWithRule(raw)
	recordParseOutcome(rule)
	return parsed, rule
}
