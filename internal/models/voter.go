package models

// Voter represents a registered student entitled to cast at most one ballot.
type Voter struct {
	// NPM is the institutional student ID and the unique identity key.
	NPM string

	// Name is the student's full display name, as it appears on the KRS
	// enrollment document.
	Name string

	// Region is the campus region label chosen at registration.
	Region string

	// ClassLabel is the free-form class/section label.
	ClassLabel string

	// PasswordHash is the bcrypt hash of the voter's password.
	// Never exposed through the API.
	PasswordHash string

	// Photo is the base64-encoded enrollment photo captured at
	// registration. Retained for administrative display only; it is never
	// re-verified.
	Photo string

	// HasVoted is true once the voter has cast a ballot. Transitions
	// false -> true exactly once, never back.
	HasVoted bool

	// CreatedAt is the Unix timestamp of successful registration.
	CreatedAt int64
}

// Participation summarizes voter turnout for the admin dashboard.
type Participation struct {
	Total    int `json:"total"`
	Voted    int `json:"voted"`
	NotVoted int `json:"not_voted"`
}
