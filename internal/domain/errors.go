package domain

import "errors"

// Core failure taxonomy. All are synchronous and non-retryable inside the
// pipeline; callers decide what, if anything, to retry.
var (
	// ErrInsufficientData means a borrower has no ledger rows to aggregate.
	ErrInsufficientData = errors.New("insufficient payment data")

	// ErrInvalidRecord means a ledger row or feature vector is malformed,
	// e.g. non-positive income.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrModelUnavailable means no trained classifier artifact is present or
	// the artifact is corrupt. Fatal at process start, not per request.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrFeatureShape means an input vector does not match the feature
	// schema the model was trained with.
	ErrFeatureShape = errors.New("feature shape mismatch")
)
