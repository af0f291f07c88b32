package rules

import (
	"sort"
	"time"

	"github.com/deckardlabs/baseline/pkg/models"
)

// sortedTimes extracts the timestamps of the given events, ascending.
// The input slice is left untouched.
func sortedTimes(events []models.ActivityEvent) []time.Time {
	ts := make([]time.Time, 0, len(events))
	for _, e := range events {
		ts = append(ts, e.CreatedAt)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
	return ts
}

// dayKey truncates a timestamp to its UTC calendar date.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// distinctSortedDays collects the distinct UTC calendar dates touched by
// the given events, sorted ascending.
func distinctSortedDays(events []models.ActivityEvent) []string {
	seen := make(map[string]struct{})
	for _, e := range events {
		seen[dayKey(e.CreatedAt)] = struct{}{}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// longestRun returns the length of the longest run of immediately
// consecutive calendar dates in a sorted, de-duplicated day list.
func longestRun(days []string) int {
	if len(days) == 0 {
		return 0
	}
	maxRun, run := 1, 1
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse("2006-01-02", days[i-1])
		curr, _ := time.Parse("2006-01-02", days[i])
		if curr.Sub(prev) == 24*time.Hour {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 1
		}
	}
	return maxRun
}

// plural returns "s" unless n is exactly one.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
