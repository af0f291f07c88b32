package rules

import (
	"fmt"
	"math"
	"time"

	"github.com/deckardlabs/baseline/pkg/models"
)

// ZeroRepoActivityRule fires when an account owns nothing yet is busy all
// over other people's repositories. The flag weight combines the "no
// personal footprint" and "entirely external" point values, since both
// aspects of the signal apply at once.
type ZeroRepoActivityRule struct {
	Points int
}

func NewZeroRepoActivityRule(points int) *ZeroRepoActivityRule {
	return &ZeroRepoActivityRule{Points: points}
}

func (r *ZeroRepoActivityRule) Name() string {
	return "ZeroRepoActivity"
}

func (r *ZeroRepoActivityRule) Description() string {
	return "Flags accounts with no repositories of their own whose activity is entirely external."
}

func (r *ZeroRepoActivityRule) Evaluate(ctx *Context) *models.Flag {
	if !ctx.Partition.ZeroRepoActive {
		return nil
	}
	return &models.Flag{
		Label:  "Only active on other people's repos",
		Points: r.Points,
		Detail: fmt.Sprintf("No personal repos, all %d events are on repos they don't own", len(ctx.Events)),
	}
}

// RepoSpreadRule counts distinct external repositories touched. A young
// account active across dozens of repositories it doesn't own looks more
// like a contribution farm than an onboarding developer.
type RepoSpreadRule struct {
	High          int
	Extreme       int
	WidePoints    int
	ExtremePoints int
}

func NewRepoSpreadRule(high, extreme, widePoints, extremePoints int) *RepoSpreadRule {
	return &RepoSpreadRule{
		High:          high,
		Extreme:       extreme,
		WidePoints:    widePoints,
		ExtremePoints: extremePoints,
	}
}

func (r *RepoSpreadRule) Name() string {
	return "RepoSpread"
}

func (r *RepoSpreadRule) Description() string {
	return fmt.Sprintf("Flags activity across %d+ external repositories.", r.High)
}

func (r *RepoSpreadRule) Temporal() {}

func (r *RepoSpreadRule) Evaluate(ctx *Context) *models.Flag {
	n := ctx.Partition.ExternalRepoCount
	detail := fmt.Sprintf("Active in %d repos they don't own", n)
	if n >= r.Extreme {
		return &models.Flag{Label: "Very wide contribution spread", Points: r.ExtremePoints, Detail: detail}
	}
	if n >= r.High {
		return &models.Flag{Label: "Wide contribution spread", Points: r.WidePoints, Detail: detail}
	}
	return nil
}

// PRCadenceRule watches the trailing 24-hour and 7-day windows for external
// pull request volume. The windows hang off the evaluation instant, never
// the wall clock.
type PRCadenceRule struct {
	TodayExtreme    int
	WeekHigh        int
	BurstPoints     int
	FrequencyPoints int
}

func NewPRCadenceRule(todayExtreme, weekHigh, burstPoints, frequencyPoints int) *PRCadenceRule {
	return &PRCadenceRule{
		TodayExtreme:    todayExtreme,
		WeekHigh:        weekHigh,
		BurstPoints:     burstPoints,
		FrequencyPoints: frequencyPoints,
	}
}

func (r *PRCadenceRule) Name() string {
	return "PRCadence"
}

func (r *PRCadenceRule) Description() string {
	return fmt.Sprintf("Flags %d+ external PRs in a day or %d+ in a week.", r.TodayExtreme, r.WeekHigh)
}

func (r *PRCadenceRule) Temporal() {}

func (r *PRCadenceRule) Evaluate(ctx *Context) *models.Flag {
	dayCutoff := ctx.Now.Add(-24 * time.Hour)
	weekCutoff := ctx.Now.Add(-7 * 24 * time.Hour)

	var today, week int
	for _, e := range ctx.Partition.ExternalPulls {
		if e.CreatedAt.After(dayCutoff) {
			today++
		}
		if e.CreatedAt.After(weekCutoff) {
			week++
		}
	}

	if today >= r.TodayExtreme {
		return &models.Flag{
			Label:  "High PR volume in the past 24 hours",
			Points: r.BurstPoints,
			Detail: fmt.Sprintf("%d PRs to other repos in the last 24 hours", today),
		}
	}
	if week >= r.WeekHigh {
		return &models.Flag{
			Label:  "High PR volume during last week",
			Points: r.FrequencyPoints,
			Detail: fmt.Sprintf("%d PRs to other repos this week", week),
		}
	}
	return nil
}

// PROnlyRule flags accounts that open plenty of pull requests against other
// people's repositories while owning almost nothing themselves.
type PROnlyRule struct {
	ExternalPRsMin int
	ReposLow       int
	Points         int
}

func NewPROnlyRule(externalPRsMin, reposLow, points int) *PROnlyRule {
	return &PROnlyRule{ExternalPRsMin: externalPRsMin, ReposLow: reposLow, Points: points}
}

func (r *PROnlyRule) Name() string {
	return "PROnlyContributor"
}

func (r *PROnlyRule) Description() string {
	return fmt.Sprintf("Flags %d+ external PRs from accounts with under %d repositories.", r.ExternalPRsMin, r.ReposLow)
}

func (r *PROnlyRule) Temporal() {}

func (r *PROnlyRule) Evaluate(ctx *Context) *models.Flag {
	n := len(ctx.Partition.ExternalPulls)
	repos := ctx.Profile.PublicRepos
	if n < r.ExternalPRsMin || repos >= r.ReposLow {
		return nil
	}

	detail := fmt.Sprintf("%d PRs to other repos, but only %d of their own", n, repos)
	if repos == 0 {
		detail = fmt.Sprintf("%d PRs to other repos, none of their own", n)
	}
	return &models.Flag{
		Label:  "Primarily external contributions",
		Points: r.Points,
		Detail: detail,
	}
}

// ExternalRatioRule flags activity that is almost entirely external without
// being fully covered by the zero-repo check. When the zero-repo flag
// already fired this rule stays quiet: same signal, one penalty.
type ExternalRatioRule struct {
	RatioHigh float64
	ReposLow  int
	Points    int
}

func NewExternalRatioRule(ratioHigh float64, reposLow, points int) *ExternalRatioRule {
	return &ExternalRatioRule{RatioHigh: ratioHigh, ReposLow: reposLow, Points: points}
}

func (r *ExternalRatioRule) Name() string {
	return "ExternalRatio"
}

func (r *ExternalRatioRule) Description() string {
	return fmt.Sprintf("Flags accounts with %.0f%%+ of activity on repositories they don't own.", r.RatioHigh*100)
}

func (r *ExternalRatioRule) Temporal() {}

func (r *ExternalRatioRule) Evaluate(ctx *Context) *models.Flag {
	if ctx.Partition.ZeroRepoActive || len(ctx.Events) == 0 {
		return nil
	}

	ratio := float64(len(ctx.Partition.External)) / float64(len(ctx.Events))
	if ratio < r.RatioHigh || ctx.Profile.PublicRepos >= r.ReposLow {
		return nil
	}
	return &models.Flag{
		Label:  "Mostly external activity",
		Points: r.Points,
		Detail: fmt.Sprintf("%d%% of activity on other people's repos", int(math.Round(ratio*100))),
	}
}
