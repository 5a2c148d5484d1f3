// Package policy holds the pure authorization and eligibility checks
// consulted before ticket mutations. Policies never touch storage and
// never mutate aggregates: they return a Decision the orchestration
// layer maps to forbidden/conflict responses.
package policy

// Decision is the outcome of a policy check: allowed, or denied with a
// human-readable reason.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns a passing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a failing decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}
