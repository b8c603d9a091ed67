package services

import (
	"errors"

	"warung/internal/validation"

	"github.com/go-playground/validator/v10"
)

// Terminal failure classes of the mutation engine. Handlers map these to
// status codes; everything unclassified is an internal failure.
var (
	// ErrInvalidCommand rejects an unknown command discriminator.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrNotFound reports an update, delete or retrieval against an absent id.
	ErrNotFound = errors.New("record not found")

	// ErrConflict reports a create against a taken id, or a unique-field
	// violation detected by the store during a write.
	ErrConflict = errors.New("already exists")

	// ErrConfirmationMismatch reports delete confirmation fields that do not
	// match the stored record. A delete that loses the commit race reports
	// the same class: the caller cannot tell the two apart, by contract.
	ErrConfirmationMismatch = errors.New("fields do not match")
)

// envelopeFailure turns a struct-validation error on a command envelope into
// the failure reported to the caller: a present-but-non-positive id gets its
// own reason, everything else is a missing envelope field.
func envelopeFailure(err error) *validation.Failure {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "ID" && fe.Tag() == "gt" {
				return &validation.Failure{Field: "id", Reason: "must be positive"}
			}
		}
	}
	return &validation.Failure{Reason: "missing required field(s): command, id"}
}
