// Package storage provides abstractions for persistent election data.
package storage

import (
	"context"
	"errors"

	"github.com/pemira-fti/backend/internal/models"
)

var (
	// ErrDuplicateVoter is returned when a voter with the same NPM already
	// exists.
	ErrDuplicateVoter = errors.New("voter already registered")

	// ErrVoteAlreadyCast is returned when the voter's vote flag is already
	// set; no ballot is written on this path.
	ErrVoteAlreadyCast = errors.New("vote already cast")

	// ErrVoterNotFound is returned by CastBallot when the NPM does not
	// exist.
	ErrVoterNotFound = errors.New("voter not found")
)

// Store defines the persistence operations of the election core.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// RegisterVoter atomically inserts the voter row and, if entry is
	// non-nil, the audit entry. Returns ErrDuplicateVoter if the NPM is
	// taken; in that case nothing is written.
	RegisterVoter(ctx context.Context, voter *models.Voter, entry *models.AuditEntry) error

	// GetVoter retrieves a voter by NPM. Returns (nil, nil) when absent.
	GetVoter(ctx context.Context, npm string) (*models.Voter, error)

	// ListVoters returns all voters for the admin dashboard, without
	// password hashes or photos.
	ListVoters(ctx context.Context) ([]models.Voter, error)

	// CastBallot performs the one-way vote transition as a single unit:
	// flip the voter's vote flag only if it is currently unset, then
	// insert the ballot and the audit entry. Returns ErrVoteAlreadyCast
	// without any writes if the flag was already set, ErrVoterNotFound if
	// the NPM does not exist.
	CastBallot(ctx context.Context, npm string, ballot *models.Ballot, entry *models.AuditEntry) error

	// TallyBallots returns per-candidate ballot counts.
	TallyBallots(ctx context.Context) ([]models.CandidateTally, error)

	// AppendAudit writes a single audit entry outside any other operation.
	AppendAudit(ctx context.Context, entry *models.AuditEntry) error

	// RecentAudit returns up to limit audit entries, newest first.
	RecentAudit(ctx context.Context, limit int) ([]models.AuditEntry, error)

	// Participation returns turnout counts for the admin dashboard.
	Participation(ctx context.Context) (*models.Participation, error)

	// Close releases any resources held by the store.
	Close() error
}
