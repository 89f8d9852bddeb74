package exam

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested exam does not exist.
	ErrNotFound = errors.New("exam not found")

	// ErrUnknownPatient is returned when the candidate references a patient
	// that does not exist at commit time.
	ErrUnknownPatient = errors.New("referenced patient does not exist")

	// ErrIdempotencyKeyTaken is returned by the repository when an insert
	// loses the race on the idempotency-key unique index. The service
	// resolves it by re-reading the winner's row; it never escapes Create.
	ErrIdempotencyKeyTaken = errors.New("idempotency key already exists")
)

// ValidationError reports malformed input, rejected before any storage access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a submission rejected as a semantic duplicate, or an
// idempotency race the store could not resolve. Duplicates are rejected,
// never merged: a human decides whether the repeat was intentional.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
