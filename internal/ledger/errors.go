package ledger

import "errors"

var (
	// ErrNotFound: the tokenId or unit number resolves to no record.
	ErrNotFound = errors.New("container not found")

	// ErrConflict: duplicate unit number at registration.
	ErrConflict = errors.New("container already registered")

	// ErrUnauthorized: caller is not the current holder (initiate) or
	// lacks administrative authority (register).
	ErrUnauthorized = errors.New("caller not authorized")

	// ErrNotAuthorizedFacility: destination is not an active registered
	// facility, or the confirming caller is not the addressed facility.
	ErrNotAuthorizedFacility = errors.New("not an authorized facility")

	// ErrInvalidState: confirm attempted with no PENDING handoff.
	ErrInvalidState = errors.New("no pending handoff")

	// ErrValidation: malformed unit number, negative weight, duration
	// below the minimum, or empty identity.
	ErrValidation = errors.New("validation failed")

	// ErrUnconfigured: no operator identity is configured; write
	// operations fail fast, reads remain available.
	ErrUnconfigured = errors.New("operator not configured")

	// ErrVersionConflict: the store rejected a commit because the
	// record changed underneath it. Retryable; the ledger re-reads and
	// re-validates before retrying.
	ErrVersionConflict = errors.New("version conflict")
)
