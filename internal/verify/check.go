package verify

import "context"

// Tier ranks failure classes. Lower tiers are more urgent: when failures of
// several tiers occur in the same round only the most urgent tier is shown,
// since fixing it usually changes the others.
type Tier int

const (
	// TierProject covers project-wide problems such as a disabled API.
	TierProject Tier = iota
	// TierUser covers per-user problems such as a service turned off for the
	// admin account.
	TierUser
)

// Finding is the outcome of evaluating one check.
type Finding struct {
	Passed  bool
	Tier    Tier
	Message string
}

// Pass reports a satisfied check.
func Pass() Finding {
	return Finding{Passed: true}
}

// Fail reports an unsatisfied check with its remediation message.
func Fail(tier Tier, message string) Finding {
	return Finding{Tier: tier, Message: message}
}

// Check is a named condition over freshly fetched external state. Evaluate
// is called once per round and must not cache between calls.
type Check struct {
	Name     string
	Evaluate func(ctx context.Context) Finding
}

// Predicate adapts a boolean condition. remediation is shown when the
// condition is false; the check name is used when it is empty.
func Predicate(name string, cond func(ctx context.Context) bool, remediation string) Check {
	return Check{
		Name: name,
		Evaluate: func(ctx context.Context) Finding {
			if cond(ctx) {
				return Pass()
			}
			return Fail(TierProject, remediation)
		},
	}
}
