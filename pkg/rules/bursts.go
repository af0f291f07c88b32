package rules

import (
	"fmt"
	"math"
	"time"

	"github.com/deckardlabs/baseline/pkg/models"
)

// HourlyBurstRule finds the densest one-hour window of push activity.
// A two-pointer sweep over the sorted timestamps tracks the largest number
// of pushes that fit inside any window of at most one hour.
type HourlyBurstRule struct {
	High          int
	Extreme       int
	HighPoints    int
	ExtremePoints int
	MinEvents     int
}

func NewHourlyBurstRule(high, extreme, highPoints, extremePoints, minEvents int) *HourlyBurstRule {
	return &HourlyBurstRule{
		High:          high,
		Extreme:       extreme,
		HighPoints:    highPoints,
		ExtremePoints: extremePoints,
		MinEvents:     minEvents,
	}
}

func (r *HourlyBurstRule) Name() string {
	return "HourlyBurst"
}

func (r *HourlyBurstRule) Description() string {
	return fmt.Sprintf("Flags %d+ commits pushed within a single hour.", r.High)
}

func (r *HourlyBurstRule) Temporal() {}

func (r *HourlyBurstRule) Evaluate(ctx *Context) *models.Flag {
	pushes := ctx.Partition.Pushes
	if len(pushes) < r.MinEvents {
		return nil
	}

	ts := sortedTimes(pushes)
	maxWindow := 0
	left := 0
	for right := range ts {
		for ts[right].Sub(ts[left]) > time.Hour {
			left++
		}
		if window := right - left + 1; window > maxWindow {
			maxWindow = window
		}
	}

	if maxWindow >= r.Extreme {
		return &models.Flag{
			Label:  "Extreme commit burst",
			Points: r.ExtremePoints,
			Detail: fmt.Sprintf("%d commits within a single hour", maxWindow),
		}
	}
	if maxWindow >= r.High {
		return &models.Flag{
			Label:  "High commit burst",
			Points: r.HighPoints,
			Detail: fmt.Sprintf("%d commits within a single hour", maxWindow),
		}
	}
	return nil
}

// TightSpacingRule counts adjacent push pairs landing within a short fixed
// interval of each other. Humans pause between commits; scripted pipelines
// do not. The detail reports the number of commits in the tight run, which
// is one more than the number of tight gaps.
type TightSpacingRule struct {
	Gap       time.Duration
	Threshold int
	Points    int
}

func NewTightSpacingRule(gap time.Duration, threshold, points int) *TightSpacingRule {
	return &TightSpacingRule{Gap: gap, Threshold: threshold, Points: points}
}

func (r *TightSpacingRule) Name() string {
	return "TightSpacing"
}

func (r *TightSpacingRule) Description() string {
	return fmt.Sprintf("Flags %d+ commit gaps of %v or less.", r.Threshold, r.Gap)
}

func (r *TightSpacingRule) Temporal() {}

func (r *TightSpacingRule) Evaluate(ctx *Context) *models.Flag {
	ts := sortedTimes(ctx.Partition.Pushes)
	tight := 0
	for i := 1; i < len(ts); i++ {
		if ts[i].Sub(ts[i-1]) <= r.Gap {
			tight++
		}
	}
	if tight < r.Threshold {
		return nil
	}
	return &models.Flag{
		Label:  "Commits too tightly spaced",
		Points: r.Points,
		Detail: fmt.Sprintf("%d commits spaced less than %d minutes apart", tight+1, int(r.Gap.Minutes())),
	}
}

// PRRateRule measures pull requests per day over the observed span. The
// thresholds are half the commit density bar since PRs are much rarer, and
// the points run higher for the same reason.
type PRRateRule struct {
	High          float64
	Extreme       float64
	HighPoints    int
	ExtremePoints int
	MinEvents     int
}

func NewPRRateRule(high, extreme float64, highPoints, extremePoints, minEvents int) *PRRateRule {
	return &PRRateRule{
		High:          high,
		Extreme:       extreme,
		HighPoints:    highPoints,
		ExtremePoints: extremePoints,
		MinEvents:     minEvents,
	}
}

func (r *PRRateRule) Name() string {
	return "PRRate"
}

func (r *PRRateRule) Description() string {
	return fmt.Sprintf("Flags a sustained rate of %.0f+ pull requests per day.", r.High)
}

func (r *PRRateRule) Temporal() {}

func (r *PRRateRule) Evaluate(ctx *Context) *models.Flag {
	prs := ctx.Partition.PullRequests
	if len(prs) < r.MinEvents {
		return nil
	}

	ts := sortedTimes(prs)
	// Floor the span to one day to keep the rate finite.
	spanDays := int(math.Round(ts[len(ts)-1].Sub(ts[0]).Hours() / 24))
	if spanDays < 1 {
		spanDays = 1
	}
	rate := float64(len(prs)) / float64(spanDays)

	detail := fmt.Sprintf("%d PRs in %d day%s", len(prs), spanDays, plural(spanDays))
	if rate >= r.Extreme {
		return &models.Flag{Label: "Extremely high PR rate", Points: r.ExtremePoints, Detail: detail}
	}
	if rate >= r.High {
		return &models.Flag{Label: "High PR rate", Points: r.HighPoints, Detail: detail}
	}
	return nil
}

// ForkSurgeRule flags accounts forking repositories in bulk, a pattern of
// automated contribution farming.
type ForkSurgeRule struct {
	High          int
	Extreme       int
	HighPoints    int
	ExtremePoints int
}

func NewForkSurgeRule(high, extreme, highPoints, extremePoints int) *ForkSurgeRule {
	return &ForkSurgeRule{
		High:          high,
		Extreme:       extreme,
		HighPoints:    highPoints,
		ExtremePoints: extremePoints,
	}
}

func (r *ForkSurgeRule) Name() string {
	return "ForkSurge"
}

func (r *ForkSurgeRule) Description() string {
	return fmt.Sprintf("Flags %d+ repositories forked within the recent event window.", r.High)
}

func (r *ForkSurgeRule) Temporal() {}

func (r *ForkSurgeRule) Evaluate(ctx *Context) *models.Flag {
	n := ctx.Partition.ForkCount
	detail := fmt.Sprintf("%d repos forked recently", n)
	if n >= r.Extreme {
		return &models.Flag{Label: "Many recent forks", Points: r.ExtremePoints, Detail: detail}
	}
	if n >= r.High {
		return &models.Flag{Label: "Multiple forks", Points: r.HighPoints, Detail: detail}
	}
	return nil
}
