// Package service implements the election core: the registration pipeline,
// the authentication flow, the vote-casting state machine, and the
// tally/admin read paths.
package service

import "errors"

// Failure kinds surfaced to callers. Store and encoding failures are not in
// this set; they propagate as wrapped errors and must never be collapsed
// into a verification failure.
var (
	// ErrIncompleteSubmission: a required registration field or file is
	// missing.
	ErrIncompleteSubmission = errors.New("registration submission incomplete")

	// ErrVerificationFailed: the document or the face check failed. The two
	// share one kind so submitters cannot tell which check rejected them.
	ErrVerificationFailed = errors.New("identity verification failed")

	// ErrDuplicateIdentity: the NPM is already registered.
	ErrDuplicateIdentity = errors.New("identity already registered")

	// ErrInvalidCandidate: the candidate token is not in the configured set.
	ErrInvalidCandidate = errors.New("unknown candidate")

	// ErrAlreadyVoted: the voter has already cast a ballot.
	ErrAlreadyVoted = errors.New("ballot already cast")
)
