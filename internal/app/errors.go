package app

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUserNotFound        = errors.New("user not found")
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrSubjectsInitialized = errors.New("subjects already initialized")
	ErrEmptyCorpus         = errors.New("no notes uploaded for this subject")
	ErrNoExtractableText   = errors.New("document contains no extractable text")

	// Model-call failures. Rate limiting is kept distinct so callers can back
	// off; the core never retries either.
	ErrUpstreamRateLimit = errors.New("model provider rate limited")
	ErrUpstreamFailure   = errors.New("model call failed")

	// ErrMalformedGeneration means the model's output could not be parsed into
	// the required study-set shape. Never downgraded to a fallback payload.
	ErrMalformedGeneration = errors.New("model response is not a valid study set")
)
