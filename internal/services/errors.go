package services

import "errors"

var (
	// ErrNotFound means a referenced record has no backing document.
	ErrNotFound = errors.New("record not found")

	// ErrAccessDenied means the acting member does not own or belong to
	// the record.
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation means required input is missing or malformed; no
	// store call was made.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken means the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials means login failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTerminalStatus means a swap request is already confirmed or
	// rejected and cannot transition again.
	ErrTerminalStatus = errors.New("request already decided")

	// ErrAlreadySubmitted means a test already holds its single learner
	// submission.
	ErrAlreadySubmitted = errors.New("test already submitted")
)
