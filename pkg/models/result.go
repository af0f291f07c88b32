package models

// Classification is the final verdict on an account. It is always derived
// from the inverted score against two fixed cutoffs, never set on its own.
type Classification string

const (
	ClassHuman      Classification = "human"
	ClassSuspicious Classification = "suspicious"
	ClassLikelyBot  Classification = "likely_bot"
)

// Flag is a single named, weighted piece of evidence. Flags are append-only
// during one evaluation; they are never merged or deduplicated.
type Flag struct {
	// Label is the short human-readable name of the signal.
	Label string `json:"label"`

	// Points is the positive penalty this flag contributes.
	Points int `json:"points"`

	// Detail explains the evidence with the concrete figures interpolated.
	Detail string `json:"detail"`
}

// ProfileSummary is the condensed profile view carried on the result so
// callers can render a verdict without re-deriving anything.
type ProfileSummary struct {
	// AgeDays is the account age in whole days at evaluation time.
	AgeDays     int  `json:"age"`
	Followers   int  `json:"followers"`
	Repos       int  `json:"repos"`
	HasIdentity bool `json:"has_identity"`
}

// AnalysisResult is the complete output of one evaluation.
//
// The result is deterministic: identical (profile, events, config, now)
// inputs always produce an identical flag sequence and score. Flags keep
// emission order, which is rule registration order, for display and audit.
// The library does not make a binary "bot / not bot" decision on its own;
// it returns the itemized score so the integrating application can apply
// its own policy on top of the classification.
type AnalysisResult struct {
	// Score is the inverted human-likelihood metric, clamped to [0, 100].
	// 100 means no suspicious signal was found.
	Score int `json:"score"`

	Classification Classification `json:"classification"`

	// Flags lists every triggered signal in evaluation order.
	Flags []Flag `json:"flags"`

	Profile ProfileSummary `json:"profile"`
}
