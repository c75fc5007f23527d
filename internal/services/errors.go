// Package services defines the business logic of the song proposal workflow.
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"
)

// Workflow errors.
var (
	// ErrValidation is returned when a required field is missing or empty.
	// The operation is not attempted.
	ErrValidation = errors.New("validation error")

	// ErrInvalidReference is returned when an artist, song or station id does
	// not resolve to an existing entity.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrNotSongOwner is returned when the artist does not own the proposed
	// song. It wraps ErrInvalidReference for callers that only care about the
	// broader class.
	ErrNotSongOwner = fmt.Errorf("%w: artist does not own the song", ErrInvalidReference)

	// ErrDuplicateProposal is returned when a proposal already exists for the
	// (song, station) pair, whatever its status.
	ErrDuplicateProposal = errors.New("proposal already exists")

	// ErrInvalidTransition is returned when accept/reject is attempted on a
	// proposal that is no longer Pending.
	ErrInvalidTransition = errors.New("proposal is not pending")

	// ErrProposalNotFound is returned when no proposal exists for the pair.
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrForbidden is returned when the actor may not perform the operation.
	ErrForbidden = errors.New("forbidden")
)

// Stable machine-readable codes, shared by per-station broadcast failures and
// the HTTP error envelope.
const (
	CodeValidation        = "validation_error"
	CodeInvalidReference  = "invalid_reference"
	CodeDuplicateProposal = "duplicate_proposal"
	CodeInvalidTransition = "invalid_transition"
	CodeNotFound          = "not_found"
	CodeForbidden         = "forbidden"
	CodeInternal          = "internal_error"
)

// ErrorCode returns the stable code for err.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInvalidReference):
		return CodeInvalidReference
	case errors.Is(err, ErrDuplicateProposal):
		return CodeDuplicateProposal
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrProposalNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternal
	}
}

// DispatchFailure reports a notification that could not be delivered after
// its state transition was committed. It is logged, never returned to the
// caller of the transition.
type DispatchFailure struct {
	Event     EventType
	SongID    int64
	StationID int64
	Err       error
}

func (e *DispatchFailure) Error() string {
	return fmt.Sprintf("dispatch %s (song %d, station %d): %v", e.Event, e.SongID, e.StationID, e.Err)
}

func (e *DispatchFailure) Unwrap() error { return e.Err }
