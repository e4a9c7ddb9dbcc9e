package sqlite

import (
	"context"
	"fmt"

	"github.com/pemira-fti/backend/internal/models"
	"github.com/pemira-fti/backend/internal/storage"
)

// CastBallot performs the one-way vote transition. The conditional UPDATE is
// the linchpin: it flips the flag only if it is currently unset, so of any
// number of concurrent casts for the same NPM exactly one proceeds to the
// ballot insert. The ballot and audit writes ride the same transaction, so
// either all three effects commit or none do.
func (s *SQLiteStore) CastBallot(ctx context.Context, npm string, ballot *models.Ballot, entry *models.AuditEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE voters SET has_voted = 1 WHERE npm = ? AND has_voted = 0
	`, npm)
	if err != nil {
		return fmt.Errorf("failed to update vote flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM voters WHERE npm = ?)`, npm,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check voter: %w", err)
		}
		if !exists {
			return storage.ErrVoterNotFound
		}
		return storage.ErrVoteAlreadyCast
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ballots (id, candidate, cast_at) VALUES (?, ?, ?)
	`, ballot.ID, ballot.Candidate, ballot.CastAt)
	if err != nil {
		return fmt.Errorf("failed to insert ballot: %w", err)
	}

	if entry != nil {
		if err := insertAudit(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// TallyBallots returns per-candidate ballot counts. Candidates with no
// ballots yield no row; the service layer fills in zeroes.
func (s *SQLiteStore) TallyBallots(ctx context.Context) ([]models.CandidateTally, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate, COUNT(*) FROM ballots GROUP BY candidate
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to tally ballots: %w", err)
	}
	defer rows.Close()

	var tallies []models.CandidateTally
	for rows.Next() {
		var tally models.CandidateTally
		if err := rows.Scan(&tally.Candidate, &tally.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tallies = append(tallies, tally)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tallies: %w", err)
	}
	return tallies, nil
}
