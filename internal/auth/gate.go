// Package auth implements credential hashing, session tokens, and the
// authentication gate that routes a login to a voter or administrator
// identity.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/pemira-fti/backend/internal/models"
)

// ErrRejected is returned for every failed credential check. Unknown
// identity and wrong password are deliberately indistinguishable so callers
// cannot enumerate registered NPMs.
var ErrRejected = errors.New("credentials rejected")

// Role distinguishes voter sessions from administrator sessions.
type Role string

const (
	RoleVoter Role = "voter"
	RoleAdmin Role = "admin"
)

// Identity is the result of a successful authentication.
type Identity struct {
	NPM  string
	Role Role

	// HasVoted carries the voter's current vote state so the caller can
	// route to the ballot or the results view. Always false for admins.
	HasVoted bool
}

// VoterSource is the subset of the store the gate needs.
type VoterSource interface {
	GetVoter(ctx context.Context, npm string) (*models.Voter, error)
}

// Gate validates credentials against the voter table, with a configured
// administrator override checked first.
//
// The override is a carry-over from the source system, where it was a
// hard-coded demo credential. It is kept as an explicit, documented admin
// path, but the pair comes from secret-backed configuration and the stored
// password is a bcrypt hash.
type Gate struct {
	voters        VoterSource
	adminUsername string
	adminHash     string
}

// NewGate creates an authentication gate. adminHash must be a bcrypt hash.
func NewGate(voters VoterSource, adminUsername, adminHash string) *Gate {
	return &Gate{
		voters:        voters,
		adminUsername: adminUsername,
		adminHash:     adminHash,
	}
}

// Authenticate validates the identity key and password. Store failures
// propagate as errors distinct from ErrRejected; they are never collapsed
// into a rejection.
func (g *Gate) Authenticate(ctx context.Context, identityKey, password string) (*Identity, error) {
	if g.isAdmin(identityKey, password) {
		return &Identity{NPM: g.adminUsername, Role: RoleAdmin}, nil
	}

	voter, err := g.voters.GetVoter(ctx, identityKey)
	if err != nil {
		return nil, fmt.Errorf("failed to look up voter: %w", err)
	}
	if voter == nil || !CheckPassword(voter.PasswordHash, password) {
		return nil, ErrRejected
	}

	return &Identity{NPM: voter.NPM, Role: RoleVoter, HasVoted: voter.HasVoted}, nil
}

func (g *Gate) isAdmin(identityKey, password string) bool {
	if subtle.ConstantTimeCompare([]byte(identityKey), []byte(g.adminUsername)) != 1 {
		return false
	}
	return CheckPassword(g.adminHash, password)
}
