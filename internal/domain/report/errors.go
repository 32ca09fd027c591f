package report

import "errors"

var (
	// ErrInvalidDate is returned when the submitted date field cannot be parsed
	ErrInvalidDate = errors.New("invalid report date")

	// ErrInvalidAmount is returned when an amount field is not a non-negative integer
	ErrInvalidAmount = errors.New("invalid report amount")

	// ErrNotFound is returned when no report exists at the expected key
	ErrNotFound = errors.New("report not found")

	// ErrStaleReport is returned when a referenced report no longer exists
	// at the key derived from its rendered message
	ErrStaleReport = errors.New("report no longer exists for this message")

	// ErrForbidden is returned when the actor lacks approval capability
	ErrForbidden = errors.New("actor is not allowed to decide on this report")

	// ErrAlreadyDecided is returned when a decision is attempted on a report
	// whose approval is already recorded
	ErrAlreadyDecided = errors.New("report already has a recorded decision")
)
