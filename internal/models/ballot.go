package models

// Ballot is an immutable record of one candidate choice.
//
// Ballots deliberately carry no voter reference; see the package
// documentation for the secrecy boundary.
type Ballot struct {
	// ID is the unique ballot identifier (UUID format).
	ID string `json:"id"`

	// Candidate is the chosen candidate token, one of the configured
	// candidate set.
	Candidate string `json:"candidate"`

	// CastAt is the Unix timestamp at which the ballot was recorded.
	CastAt int64 `json:"cast_at"`
}

// CandidateTally is the ballot count for a single candidate.
type CandidateTally struct {
	Candidate string `json:"candidate"`
	Count     int    `json:"count"`
}
