package models

// Audit actions written by the services. Free-form text is allowed, but the
// state-changing operations all use these.
const (
	AuditAccountCreated = "account created"
	AuditLoginSucceeded = "login succeeded"
	AuditBallotCast     = "ballot cast"
)

// AuditEntry is one append-only log row recording a state-changing action.
// Entries are never mutated or deleted.
type AuditEntry struct {
	// ID is assigned by the store (auto-increment).
	ID int64 `json:"id"`

	// NPM identifies the acting voter, or a system marker such as "admin".
	NPM string `json:"npm"`

	// At is the Unix timestamp of the action.
	At int64 `json:"at"`

	// Location is the deployment location tag (configured, e.g. "Jakarta").
	Location string `json:"location"`

	// Action describes what happened.
	Action string `json:"action"`
}
