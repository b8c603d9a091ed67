// Package validation provides the composable field checks the mutation
// services run before any write. Checks are pure: they take an already
// decoded value plus its field name and report the first problem found.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Failure describes a single rejected field. Services stop at the first
// failure; failures are never aggregated.
type Failure struct {
	Field  string
	Reason string
}

// Error implements the error interface so handlers can surface a Failure
// directly as the response message.
func (f *Failure) Error() string {
	if f.Field == "" {
		return f.Reason
	}
	return fmt.Sprintf("%s %s", f.Field, f.Reason)
}

// Check validates a present field value.
type Check[T any] func(field string, value T) *Failure

// Require fails when the value is absent, otherwise applies check (which may
// be nil for presence-only validation).
func Require[T any](field string, value *T, check Check[T]) *Failure {
	if value == nil {
		return &Failure{Field: field, Reason: "is required"}
	}
	if check == nil {
		return nil
	}
	return check(field, *value)
}

// IfPresent passes trivially when the value is absent, otherwise applies
// check. This is the optional variant used for partial updates.
func IfPresent[T any](field string, value *T, check Check[T]) *Failure {
	if value == nil {
		return nil
	}
	return check(field, *value)
}

// NonBlank rejects empty and whitespace-only strings.
func NonBlank(field, value string) *Failure {
	if strings.TrimSpace(value) == "" {
		return &Failure{Field: field, Reason: "must not be blank"}
	}
	return nil
}

// NonNegativeNumber rejects NaN, infinities and negative values.
func NonNegativeNumber(field string, value float64) *Failure {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &Failure{Field: field, Reason: "must be a finite number"}
	}
	if value < 0 {
		return &Failure{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// NonNegativeInteger applies NonNegativeNumber and additionally rejects
// non-integral values and values too large to store as int64.
func NonNegativeInteger(field string, value float64) *Failure {
	if fail := NonNegativeNumber(field, value); fail != nil {
		return fail
	}
	if value != math.Trunc(value) {
		return &Failure{Field: field, Reason: "must be an integer"}
	}
	// MaxInt64 rounds up to 2^63 as a float64; anything at or above it
	// would overflow the int64 conversion into a negative number.
	if value >= math.MaxInt64 {
		return &Failure{Field: field, Reason: "is too large"}
	}
	return nil
}

// ASCII local part, dot-separated domain labels, TLD of at least two letters.
var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@(?:[A-Z0-9-]+\.)+[A-Z]{2,}$`)

// EmailShape rejects strings that do not look like local@domain.tld.
func EmailShape(field, value string) *Failure {
	if !emailPattern.MatchString(value) {
		return &Failure{Field: field, Reason: "must be a valid email address"}
	}
	return nil
}
