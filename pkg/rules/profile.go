package rules

import (
	"fmt"

	"github.com/deckardlabs/baseline/pkg/models"
)

// AccountAgeRule penalizes freshly registered accounts. Brand new and
// merely young accounts are two tiers of the same signal, so at most one
// of the two flags is emitted.
type AccountAgeRule struct {
	NewDays     int
	YoungDays   int
	NewPoints   int
	YoungPoints int
}

func NewAccountAgeRule(newDays, youngDays, newPoints, youngPoints int) *AccountAgeRule {
	return &AccountAgeRule{
		NewDays:     newDays,
		YoungDays:   youngDays,
		NewPoints:   newPoints,
		YoungPoints: youngPoints,
	}
}

func (r *AccountAgeRule) Name() string {
	return "AccountAge"
}

func (r *AccountAgeRule) Description() string {
	return fmt.Sprintf("Flags accounts younger than %d (new) or %d (young) days.", r.NewDays, r.YoungDays)
}

func (r *AccountAgeRule) Evaluate(ctx *Context) *models.Flag {
	age := ctx.AgeDays
	if age < r.NewDays {
		return &models.Flag{
			Label:  "Recently created",
			Points: r.NewPoints,
			Detail: fmt.Sprintf("Account is %d days old", age),
		}
	}
	if age < r.YoungDays {
		return &models.Flag{
			Label:  "Young account",
			Points: r.YoungPoints,
			Detail: fmt.Sprintf("Account is %d days old", age),
		}
	}
	return nil
}

// IdentityRule flags profiles with neither a display name nor a bio.
type IdentityRule struct {
	Points int
}

func NewIdentityRule(points int) *IdentityRule {
	return &IdentityRule{Points: points}
}

func (r *IdentityRule) Name() string {
	return "Identity"
}

func (r *IdentityRule) Description() string {
	return "Flags profiles that provide neither a name nor a bio."
}

func (r *IdentityRule) Evaluate(ctx *Context) *models.Flag {
	if ctx.Profile.HasIdentity() {
		return nil
	}
	return &models.Flag{
		Label:  "Minimal profile",
		Points: r.Points,
		Detail: "No name or bio provided",
	}
}

// FollowRatioRule catches follow-bot patterns: following many accounts
// while attracting almost no followers, or having none at all.
type FollowRatioRule struct {
	FollowingMin       int
	FollowersMax       int
	RatioPoints        int
	ZeroFollowerPoints int
}

func NewFollowRatioRule(followingMin, followersMax, ratioPoints, zeroPoints int) *FollowRatioRule {
	return &FollowRatioRule{
		FollowingMin:       followingMin,
		FollowersMax:       followersMax,
		RatioPoints:        ratioPoints,
		ZeroFollowerPoints: zeroPoints,
	}
}

func (r *FollowRatioRule) Name() string {
	return "FollowRatio"
}

func (r *FollowRatioRule) Description() string {
	return fmt.Sprintf("Flags accounts following more than %d others with fewer than %d followers.", r.FollowingMin, r.FollowersMax)
}

func (r *FollowRatioRule) Evaluate(ctx *Context) *models.Flag {
	p := ctx.Profile
	if p.Following > r.FollowingMin && p.Followers < r.FollowersMax {
		return &models.Flag{
			Label:  "Unusual follow ratio",
			Points: r.RatioPoints,
			Detail: fmt.Sprintf("Following %d but only %d followers", p.Following, p.Followers),
		}
	}
	if p.Followers == 0 && p.Following > 0 {
		return &models.Flag{
			Label:  "No followers yet",
			Points: r.ZeroFollowerPoints,
			Detail: "Account has no followers",
		}
	}
	return nil
}
