package engine

import "time"

// Config is the full calibration table for the scoring engine: every
// threshold and point weight lives here, named, so tuning never touches
// rule logic. A Config is loaded once, injected into New, and treated as
// read-only for the lifetime of the engine; per-test overrides just build
// a modified copy.
type Config struct {
	// Classification cutoffs over the inverted 0-100 score.
	ThresholdHuman      int // >= this = human
	ThresholdSuspicious int // >= this = suspicious, below = likely_bot

	// Account age.
	NewAccountDays     int
	YoungAccountDays   int
	PointsNewAccount   int
	PointsYoungAccount int

	// Identity.
	PointsNoIdentity int

	// Follow ratio.
	FollowingMin        int // following > this AND followers < FollowersMax
	FollowersMax        int
	PointsFollowRatio   int
	PointsZeroFollowers int

	// MinEventsForAnalysis gates every temporal pattern check: below this
	// much total activity the event stream is too sparse to judge.
	MinEventsForAnalysis int

	// Hourly commit burst (max pushes inside any sliding one-hour window).
	HourlyHigh         int
	HourlyExtreme      int
	PointsHighBurst    int
	PointsExtremeBurst int

	// Tight commit spacing.
	TightGap        time.Duration // adjacent pushes closer than this are "tight"
	TightThreshold  int           // this many tight gaps = flag
	PointsTightGaps int

	// PR rate (PRs per day over the observed span). The bar is half the
	// commit density bar since PRs are rarer by nature, and the points are
	// elevated over the commit equivalents for the same reason.
	PRRateHigh          float64
	PRRateExtreme       float64
	PointsHighPRRate    int
	PointsExtremePRRate int

	// Fork surge.
	ForksHigh           int
	ForksExtreme        int
	PointsMultipleForks int
	PointsForkSurge     int

	// Marathon days: a day counting coding activity in at least
	// HoursInhuman distinct UTC hours leaves near-zero time to rest.
	HoursInhuman               int
	ConsecutiveMarathonExtreme int
	FrequentMarathonDays       int
	PointsNonstopActivity      int
	PointsFrequentMarathon     int

	// Activity streak over all events.
	StreakDays   int
	PointsStreak int

	// External repo spread (young accounts only).
	SpreadHigh          int
	SpreadExtreme       int
	PointsWideSpread    int
	PointsExtremeSpread int

	// External PR cadence (trailing 24h / 7d windows from "now").
	PRsTodayExtreme       int
	PRsWeekHigh           int
	PointsPRBurst         int
	PointsHighPRFrequency int

	// PR-only contributor.
	ExternalPRsMin   int
	PersonalReposLow int // < this owned repos
	PointsPROnly     int

	// External activity ratio.
	ForeignRatioHigh    float64
	PointsExternalFocus int

	// Zero owned repos but plenty of external activity. The flag weight is
	// the sum of both point values: no personal footprint plus entirely
	// external activity are two aspects of the same signal.
	ZeroReposMinEvents       int
	PointsZeroReposActive    int
	PointsNoPersonalActivity int
}

// DefaultConfig returns the canonical calibration.
func DefaultConfig() Config {
	return Config{
		ThresholdHuman:      70,
		ThresholdSuspicious: 50,

		NewAccountDays:     30,
		YoungAccountDays:   90,
		PointsNewAccount:   20,
		PointsYoungAccount: 10,

		PointsNoIdentity: 15,

		FollowingMin:        50,
		FollowersMax:        5,
		PointsFollowRatio:   15,
		PointsZeroFollowers: 10,

		MinEventsForAnalysis: 10,

		HourlyHigh:         50,
		HourlyExtreme:      100,
		PointsHighBurst:    15,
		PointsExtremeBurst: 25,

		TightGap:        10 * time.Minute,
		TightThreshold:  3,
		PointsTightGaps: 25,

		// Half the 8/15 events-per-day commit density bar, +5/+10 points.
		PRRateHigh:          4,
		PRRateExtreme:       7.5,
		PointsHighPRRate:    20,
		PointsExtremePRRate: 35,

		ForksHigh:           5,
		ForksExtreme:        8,
		PointsMultipleForks: 20,
		PointsForkSurge:     30,

		HoursInhuman:               16,
		ConsecutiveMarathonExtreme: 3,
		FrequentMarathonDays:       5,
		PointsNonstopActivity:      40,
		PointsFrequentMarathon:     25,

		StreakDays:   21,
		PointsStreak: 25,

		SpreadHigh:          20,
		SpreadExtreme:       30,
		PointsWideSpread:    15,
		PointsExtremeSpread: 30,

		PRsTodayExtreme:       15,
		PRsWeekHigh:           20,
		PointsPRBurst:         20,
		PointsHighPRFrequency: 15,

		ExternalPRsMin:   15,
		PersonalReposLow: 5,
		PointsPROnly:     20,

		ForeignRatioHigh:    0.95,
		PointsExternalFocus: 20,

		ZeroReposMinEvents:       20,
		PointsZeroReposActive:    20,
		PointsNoPersonalActivity: 30,
	}
}
