package domain

import "errors"

var (
	// ErrNotFound signals a lookup for a draft, account or scheduled post
	// that does not exist. Nothing has been written when it is returned.
	ErrNotFound = errors.New("not found")

	// ErrProviderUnavailable marks a transient network condition while
	// talking to the generation backend. Callers should surface it as
	// retryable after a short wait.
	ErrProviderUnavailable = errors.New("generation service unavailable")

	// ErrGenerationFailed marks unusable model output. The pipeline aborts
	// and no draft is persisted.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrConfiguration marks missing credentials or connection settings.
	// Fatal at startup, not recoverable by retry.
	ErrConfiguration = errors.New("configuration error")
)
