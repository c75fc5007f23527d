// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes (e.g., duplicate_proposal, invalid_transition) are
//     reserved for workflow errors that cannot be conveyed by status alone. They
//     are the same strings the service layer reports for per-station broadcast
//     failures (services.Code*).
//   - All error responses must include both an HTTP status and one of these codes.
//
// Usage:
//   - Handlers select the most specific matching code and pass it to `fail()` along
//     with the corresponding HTTP status and message.
//   - Clients are expected to branch on these codes for programmatic error handling.
//
// Example response:
//   {
//     "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//     "code": "duplicate_proposal",
//     "message": "proposal already exists: song 10, station 5"
//   }

package handlers

import "github.com/tbourn/go-proposal-backend/internal/services"

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = services.CodeForbidden
	ErrCodeNotFound     = services.CodeNotFound
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = services.CodeInternal

	// Domain-specific:
	ErrCodeValidation        = services.CodeValidation
	ErrCodeInvalidReference  = services.CodeInvalidReference
	ErrCodeDuplicateProposal = services.CodeDuplicateProposal
	ErrCodeInvalidTransition = services.CodeInvalidTransition
	ErrCodeMethodNotAllowed  = "method_not_allowed"
)
