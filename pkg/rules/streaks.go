package rules

import (
	"fmt"
	"sort"

	"github.com/deckardlabs/baseline/pkg/models"
)

// MarathonDaysRule looks for days where coding activity (including
// reviews) touches an inhuman number of distinct UTC hours. One such day
// is a crunch; several in a row means nobody is sleeping. The consecutive
// run takes priority over the looser frequency check.
type MarathonDaysRule struct {
	HoursInhuman       int
	ConsecutiveExtreme int
	FrequentDays       int
	NonstopPoints      int
	FrequentPoints     int
}

func NewMarathonDaysRule(hoursInhuman, consecutiveExtreme, frequentDays, nonstopPoints, frequentPoints int) *MarathonDaysRule {
	return &MarathonDaysRule{
		HoursInhuman:       hoursInhuman,
		ConsecutiveExtreme: consecutiveExtreme,
		FrequentDays:       frequentDays,
		NonstopPoints:      nonstopPoints,
		FrequentPoints:     frequentPoints,
	}
}

func (r *MarathonDaysRule) Name() string {
	return "MarathonDays"
}

func (r *MarathonDaysRule) Description() string {
	return fmt.Sprintf("Flags days with coding activity across %d+ distinct hours, worst when consecutive.", r.HoursInhuman)
}

func (r *MarathonDaysRule) Temporal() {}

func (r *MarathonDaysRule) Evaluate(ctx *Context) *models.Flag {
	// Distinct UTC hours touched per calendar day.
	hoursByDay := make(map[string]map[int]struct{})
	for _, e := range ctx.Partition.CodingWithReviews {
		day := dayKey(e.CreatedAt)
		if hoursByDay[day] == nil {
			hoursByDay[day] = make(map[int]struct{})
		}
		hoursByDay[day][e.CreatedAt.UTC().Hour()] = struct{}{}
	}

	var marathonDays []string
	for day, hours := range hoursByDay {
		if len(hours) >= r.HoursInhuman {
			marathonDays = append(marathonDays, day)
		}
	}
	sort.Strings(marathonDays)

	if maxRun := longestRun(marathonDays); maxRun >= r.ConsecutiveExtreme {
		return &models.Flag{
			Label:  "Extended daily coding",
			Points: r.NonstopPoints,
			Detail: fmt.Sprintf("%d days in a row with %d+ hours of coding", maxRun, r.HoursInhuman),
		}
	}
	if len(marathonDays) >= r.FrequentDays {
		return &models.Flag{
			Label:  "Frequent long coding days",
			Points: r.FrequentPoints,
			Detail: fmt.Sprintf("%d days with %d+ hours of coding each", len(marathonDays), r.HoursInhuman),
		}
	}
	return nil
}

// ActivityStreakRule measures the longest run of consecutive calendar days
// containing any activity at all. Humans take days off eventually.
type ActivityStreakRule struct {
	StreakDays int
	Points     int
}

func NewActivityStreakRule(streakDays, points int) *ActivityStreakRule {
	return &ActivityStreakRule{StreakDays: streakDays, Points: points}
}

func (r *ActivityStreakRule) Name() string {
	return "ActivityStreak"
}

func (r *ActivityStreakRule) Description() string {
	return fmt.Sprintf("Flags %d+ consecutive days with activity.", r.StreakDays)
}

func (r *ActivityStreakRule) Temporal() {}

func (r *ActivityStreakRule) Evaluate(ctx *Context) *models.Flag {
	days := distinctSortedDays(ctx.Events)
	maxStreak := longestRun(days)
	if maxStreak < r.StreakDays {
		return nil
	}
	return &models.Flag{
		Label:  "Long activity streak",
		Points: r.Points,
		Detail: fmt.Sprintf("%d days in a row with activity", maxStreak),
	}
}
