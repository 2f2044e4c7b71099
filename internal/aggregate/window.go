package aggregate

import (
	"sort"

	"RecruitIntel/internal/domain"
)

// WindowDays is the capacity of the rolling weekly window: the seven most
// recent distinct calendar days seen, by date value.
const WindowDays = 7

// Insert returns a new window containing bucket. A bucket whose date is
// already present replaces that entry. Entries stay sorted ascending by
// date, and when more than seven distinct dates remain the smallest dates
// are evicted. Eviction goes by date value, not insertion order, so a late
// insert of an old day can be a membership no-op at capacity.
func Insert(window domain.WeeklyWindow, bucket domain.DayBucket) domain.WeeklyWindow {
	bucket.Date = domain.Day(bucket.Date)

	next := make(domain.WeeklyWindow, 0, len(window)+1)
	for _, day := range window {
		if !domain.Day(day.Date).Equal(bucket.Date) {
			next = append(next, day)
		}
	}
	next = append(next, bucket)

	sort.Slice(next, func(i, j int) bool {
		return next[i].Date.Before(next[j].Date)
	})

	if len(next) > WindowDays {
		next = next[len(next)-WindowDays:]
	}
	return next
}
