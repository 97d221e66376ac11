package domain

import "errors"

// Typed validation and workflow errors. Callers pattern-match with errors.Is
// to present a specific message; none of these are used for control flow
// inside the engine beyond short-circuiting the failed operation.
var (
	ErrAlreadyHasRole       = errors.New("target already holds the requested role")
	ErrIllegalTransition    = errors.New("requested role is not the next role in the promotion order")
	ErrUnauthorized         = errors.New("actor is not permitted to perform this transition")
	ErrInvalidSiteSelection = errors.New("exactly one site from the parent's program must be selected")
	ErrInvalidParent        = errors.New("parent must exist and hold the required role")
	ErrProgramRequired      = errors.New("a non-empty program is required")
	ErrDuplicateRequest     = errors.New("a pending request for this promotion already exists")
	ErrCycle                = errors.New("parent assignment would create a cycle")
	ErrRequestNotFound      = errors.New("promotion request not found or no longer pending")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAttributesImmutable  = errors.New("program/sites are inherited and cannot be edited on this role")
)
