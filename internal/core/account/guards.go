// Package account contains the pure business logic for user registration.
package account

import (
	"fmt"
	"strings"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RegisterContext provides context for registration guards.
// Fields are expected pre-cleaned (see Clean).
type RegisterContext struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

// Clean strips non-breaking spaces and surrounding whitespace from a field.
// Copy-pasted credentials routinely carry U+00A0 from web forms.
func Clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", ""))
}

// CanRegister evaluates whether a registration is acceptable.
// Rules:
// - No field may be blank after cleaning
// - Password must be at least MinPasswordLength characters
func CanRegister(ctx RegisterContext) GuardResult {
	if ctx.Name == "" || ctx.Phone == "" || ctx.Email == "" || ctx.Password == "" {
		return GuardResult{Allowed: false, Reason: "fields cannot be blank or just spaces"}
	}
	if len(ctx.Password) < MinPasswordLength {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	}
	return GuardResult{Allowed: true}
}
