package engine

import (
	"time"

	"github.com/deckardlabs/baseline/pkg/models"
	"github.com/deckardlabs/baseline/pkg/rules"
)

// Engine is the account analysis engine.
//
// Architecture principles:
//   - Engine is rule-agnostic: no type-switching on concrete rule types.
//   - Engine owns all event partitioning; rules receive only precomputed
//     views, so no two rules can disagree about what "external" means.
//   - Side-effect free: Evaluate performs no I/O, reads no clock, and keeps
//     no state between calls beyond the injected Config.
//   - Explainable: every triggered rule contributes an itemized flag.
//   - Extensible: custom checks implement rules.Rule (plus rules.TemporalRule
//     when they should only run against young, active accounts).
//
// An Engine is safe for concurrent use once constructed.
//
// Usage:
//
//	eng := engine.New(engine.DefaultConfig())
//	result := eng.Evaluate(profile, events, time.Now())
type Engine struct {
	cfg   Config
	rules []rules.Rule
}

// New creates an Engine carrying the standard rule set, in the order the
// flags should appear on the result: profile checks first, then the
// ownership check, then the temporal pattern checks.
func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg}

	e.AddRule(rules.NewAccountAgeRule(cfg.NewAccountDays, cfg.YoungAccountDays, cfg.PointsNewAccount, cfg.PointsYoungAccount))
	e.AddRule(rules.NewIdentityRule(cfg.PointsNoIdentity))
	e.AddRule(rules.NewFollowRatioRule(cfg.FollowingMin, cfg.FollowersMax, cfg.PointsFollowRatio, cfg.PointsZeroFollowers))
	e.AddRule(rules.NewZeroRepoActivityRule(cfg.PointsZeroReposActive + cfg.PointsNoPersonalActivity))
	e.AddRule(rules.NewHourlyBurstRule(cfg.HourlyHigh, cfg.HourlyExtreme, cfg.PointsHighBurst, cfg.PointsExtremeBurst, cfg.MinEventsForAnalysis))
	e.AddRule(rules.NewTightSpacingRule(cfg.TightGap, cfg.TightThreshold, cfg.PointsTightGaps))
	e.AddRule(rules.NewPRRateRule(cfg.PRRateHigh, cfg.PRRateExtreme, cfg.PointsHighPRRate, cfg.PointsExtremePRRate, cfg.MinEventsForAnalysis))
	e.AddRule(rules.NewForkSurgeRule(cfg.ForksHigh, cfg.ForksExtreme, cfg.PointsMultipleForks, cfg.PointsForkSurge))
	e.AddRule(rules.NewMarathonDaysRule(cfg.HoursInhuman, cfg.ConsecutiveMarathonExtreme, cfg.FrequentMarathonDays, cfg.PointsNonstopActivity, cfg.PointsFrequentMarathon))
	e.AddRule(rules.NewActivityStreakRule(cfg.StreakDays, cfg.PointsStreak))
	e.AddRule(rules.NewRepoSpreadRule(cfg.SpreadHigh, cfg.SpreadExtreme, cfg.PointsWideSpread, cfg.PointsExtremeSpread))
	e.AddRule(rules.NewPRCadenceRule(cfg.PRsTodayExtreme, cfg.PRsWeekHigh, cfg.PointsPRBurst, cfg.PointsHighPRFrequency))
	e.AddRule(rules.NewPROnlyRule(cfg.ExternalPRsMin, cfg.PersonalReposLow, cfg.PointsPROnly))
	e.AddRule(rules.NewExternalRatioRule(cfg.ForeignRatioHigh, cfg.PersonalReposLow, cfg.PointsExternalFocus))

	return e
}

// AddRule appends a rule to the engine. Rules are evaluated, and their
// flags emitted, in the order they were added.
func (e *Engine) AddRule(r rules.Rule) {
	e.rules = append(e.rules, r)
}

// Evaluate scores one account.
//
// The caller captures "now" exactly once and passes it in; the engine
// threads that single instant through every recency computation, so a
// fixed (profile, events, now) triple always yields an identical flag
// sequence and score. Empty event lists and missing optional profile
// fields are valid inputs, not errors.
func (e *Engine) Evaluate(profile models.AccountProfile, events []models.ActivityEvent, now time.Time) *models.AnalysisResult {
	ctx := e.buildContext(profile, events, now)

	// Temporal pattern checks only make sense for accounts that are still
	// young and have enough recorded activity. Established accounts produce
	// legitimate bursts; sparse streams prove nothing either way.
	temporalOK := ctx.AgeDays < e.cfg.YoungAccountDays && len(events) >= e.cfg.MinEventsForAnalysis

	flags := make([]models.Flag, 0)
	total := 0
	for _, r := range e.rules {
		if _, ok := r.(rules.TemporalRule); ok && !temporalOK {
			continue
		}
		if f := r.Evaluate(ctx); f != nil {
			total += f.Points
			flags = append(flags, *f)
		}
	}

	// Invert: 100 = human, 0 = bot.
	score := 100 - total
	if score < 0 {
		score = 0
	}

	classification := models.ClassLikelyBot
	switch {
	case score >= e.cfg.ThresholdHuman:
		classification = models.ClassHuman
	case score >= e.cfg.ThresholdSuspicious:
		classification = models.ClassSuspicious
	}

	return &models.AnalysisResult{
		Score:          score,
		Classification: classification,
		Flags:          flags,
		Profile: models.ProfileSummary{
			AgeDays:     ctx.AgeDays,
			Followers:   profile.Followers,
			Repos:       profile.PublicRepos,
			HasIdentity: profile.HasIdentity(),
		},
	}
}

// buildContext partitions the event stream once and assembles the shared
// evaluation context. All later checks reuse these views; none re-derives
// its own definition of external or coding activity.
func (e *Engine) buildContext(profile models.AccountProfile, events []models.ActivityEvent, now time.Time) *rules.Context {
	part := rules.Partition{}
	externalRepos := make(map[string]struct{})

	for _, ev := range events {
		external := ev.IsExternal(profile.Login)
		if external {
			part.External = append(part.External, ev)
			externalRepos[ev.Repo] = struct{}{}
		}

		switch ev.Type {
		case models.EventPush:
			part.Pushes = append(part.Pushes, ev)
			part.CodingWithReviews = append(part.CodingWithReviews, ev)
		case models.EventPullRequest:
			part.PullRequests = append(part.PullRequests, ev)
			part.CodingWithReviews = append(part.CodingWithReviews, ev)
			if external {
				part.ExternalPulls = append(part.ExternalPulls, ev)
			}
		case models.EventReview, models.EventReviewComment:
			part.CodingWithReviews = append(part.CodingWithReviews, ev)
		case models.EventFork:
			part.ForkCount++
		}
	}

	part.ExternalRepoCount = len(externalRepos)
	part.ZeroRepoActive = profile.PublicRepos == 0 &&
		len(part.External) == len(events) &&
		len(events) >= e.cfg.ZeroReposMinEvents

	return &rules.Context{
		Profile:   profile,
		Now:       now,
		AgeDays:   ageDays(profile.CreatedAt, now),
		Events:    events,
		Partition: part,
	}
}

// ageDays truncates the profile age to whole days.
func ageDays(created, now time.Time) int {
	return int(now.Sub(created).Hours() / 24)
}
