package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pemira-fti/backend/internal/auth"
	"github.com/pemira-fti/backend/internal/models"
	"github.com/pemira-fti/backend/internal/storage"
)

// Session is the result of a successful login.
type Session struct {
	Token    string    `json:"token"`
	NPM      string    `json:"npm"`
	Role     auth.Role `json:"role"`
	HasVoted bool      `json:"has_voted"`
}

// Results aggregates the tally for display. Candidates with no ballots
// appear with a zero count, in configured order.
type Results struct {
	Total   int                     `json:"total"`
	Tallies []models.CandidateTally `json:"tallies"`
}

// ElectionService handles login, vote casting, and results.
type ElectionService struct {
	store      storage.Store
	gate       *auth.Gate
	tokens     *auth.JWTManager
	candidates []string
	location   string
	logger     *slog.Logger
}

// NewElectionService creates the election service over the given store.
// candidates is the fixed candidate set for this deployment.
func NewElectionService(
	store storage.Store,
	gate *auth.Gate,
	tokens *auth.JWTManager,
	candidates []string,
	location string,
	logger *slog.Logger,
) *ElectionService {
	return &ElectionService{
		store:      store,
		gate:       gate,
		tokens:     tokens,
		candidates: candidates,
		location:   location,
		logger:     logger,
	}
}

// Login authenticates the identity key and password, writes an audit entry,
// and issues a session token. Failed credentials yield auth.ErrRejected with
// no distinction between unknown identity and wrong password.
func (s *ElectionService) Login(ctx context.Context, identityKey, password string) (*Session, error) {
	identity, err := s.gate.Authenticate(ctx, identityKey, password)
	if errors.Is(err, auth.ErrRejected) {
		s.logger.Warn("login rejected", "npm", identityKey)
		loginsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, err
	}
	if err != nil {
		loginsTotal.WithLabelValues(outcomeError).Inc()
		return nil, err
	}

	token, err := s.tokens.Generate(identity)
	if err != nil {
		loginsTotal.WithLabelValues(outcomeError).Inc()
		return nil, err
	}

	entry := &models.AuditEntry{
		NPM:      identity.NPM,
		At:       time.Now().Unix(),
		Location: s.location,
		Action:   models.AuditLoginSucceeded,
	}
	if err := s.store.AppendAudit(ctx, entry); err != nil {
		loginsTotal.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("failed to audit login: %w", err)
	}

	s.logger.Info("login succeeded", "npm", identity.NPM, "role", identity.Role)
	loginsTotal.WithLabelValues(outcomeOK).Inc()
	return &Session{
		Token:    token,
		NPM:      identity.NPM,
		Role:     identity.Role,
		HasVoted: identity.HasVoted,
	}, nil
}

// Cast records a ballot for the authenticated voter. The flag flip, ballot
// insert, and audit entry commit as one unit; a voter whose flag is already
// set gets ErrAlreadyVoted and no second ballot.
func (s *ElectionService) Cast(ctx context.Context, npm, candidate string) (*models.Ballot, error) {
	if !slices.Contains(s.candidates, candidate) {
		return nil, ErrInvalidCandidate
	}

	ballot := &models.Ballot{
		ID:        uuid.New().String(),
		Candidate: candidate,
		CastAt:    time.Now().Unix(),
	}
	entry := &models.AuditEntry{
		NPM:      npm,
		At:       ballot.CastAt,
		Location: s.location,
		Action:   models.AuditBallotCast,
	}

	err := s.store.CastBallot(ctx, npm, ballot, entry)
	switch {
	case errors.Is(err, storage.ErrVoteAlreadyCast):
		return nil, ErrAlreadyVoted
	case errors.Is(err, storage.ErrVoterNotFound):
		// The token named a voter that no longer resolves; treat it like a
		// failed credential rather than inventing a new kind.
		return nil, auth.ErrRejected
	case err != nil:
		return nil, fmt.Errorf("failed to cast ballot: %w", err)
	}

	s.logger.Info("ballot cast", "candidate", candidate)
	ballotsTotal.WithLabelValues(candidate).Inc()
	return ballot, nil
}

// Results returns per-candidate counts in configured candidate order, with
// zero rows for candidates that have no ballots yet.
func (s *ElectionService) Results(ctx context.Context) (*Results, error) {
	tallies, err := s.store.TallyBallots(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(tallies))
	for _, tally := range tallies {
		counts[tally.Candidate] = tally.Count
	}

	results := &Results{Tallies: make([]models.CandidateTally, 0, len(s.candidates))}
	for _, candidate := range s.candidates {
		count := counts[candidate]
		results.Tallies = append(results.Tallies, models.CandidateTally{
			Candidate: candidate,
			Count:     count,
		})
		results.Total += count
	}
	return results, nil
}
