package domain

import "fmt"

// NotFoundError represents missing related data; nothing was written.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// PreconditionError represents a guard failure detected before any write
// (meeting closed, subcase already on a live agenda, approved agenda).
type PreconditionError struct {
	Reason string
}

func (e PreconditionError) Error() string {
	return e.Reason
}

func (e PreconditionError) Is(target error) bool {
	_, ok := target.(PreconditionError)
	if ok {
		return true
	}
	_, ok = target.(*PreconditionError)
	return ok
}

// ConflictError represents a same-key operation already in flight.
type ConflictError struct {
	Key string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("an operation on %s is already in progress", e.Key)
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// VerificationError means the read-back after a persist found statements
// missing. Compensation ran; the operation can be retried from scratch.
type VerificationError struct {
	Cause error
}

func (e VerificationError) Error() string {
	msg := "could not verify created records; they have been removed and the submission can be retried"
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e VerificationError) Unwrap() error { return e.Cause }

func (e VerificationError) Is(target error) bool {
	_, ok := target.(VerificationError)
	if ok {
		return true
	}
	_, ok = target.(*VerificationError)
	return ok
}

// CompensationError means a compensating delete itself failed. The store may
// hold orphaned records; the operation must not be retried automatically.
type CompensationError struct {
	Record string
	Cause  error
}

func (e CompensationError) Error() string {
	return fmt.Sprintf("compensation failed for %s: %v", e.Record, e.Cause)
}

func (e CompensationError) Unwrap() error { return e.Cause }

func (e CompensationError) Is(target error) bool {
	_, ok := target.(CompensationError)
	if ok {
		return true
	}
	_, ok = target.(*CompensationError)
	return ok
}
