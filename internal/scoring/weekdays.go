package scoring

import "time"

// maxExpansionDays bounds the weekday expansion so a malformed multi-year
// range cannot spin the loop; after a week every weekday name has been seen
// anyway.
const maxExpansionDays = 365

// DistinctWeekdays expands a date range into the set of calendar weekday
// names it touches, walking one day at a time from start's date through
// end's date inclusive. Duplicates collapse; names are returned in
// first-seen order. An inverted range yields nothing.
func DistinctWeekdays(start, end time.Time) []string {
	cur := dateOnly(start)
	last := dateOnly(end)

	var names []string
	seen := make(map[time.Weekday]bool, 7)

	for steps := 0; !cur.After(last) && steps < maxExpansionDays; steps++ {
		wd := cur.Weekday()
		if !seen[wd] {
			seen[wd] = true
			names = append(names, wd.String())
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return names
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
