package services

import "errors"

var (
	// ErrValidation indicates bad or missing caller input; no external
	// call was made.
	ErrValidation = errors.New("invalid request")

	// ErrGeneration indicates the model call failed or returned an
	// unusable reply.
	ErrGeneration = errors.New("email generation failed")

	// ErrPersistence indicates the history write failed after the
	// transport had already accepted the message.
	ErrPersistence = errors.New("failed to record sent email")
)
