package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pemira-fti/backend/internal/models"
	"github.com/pemira-fti/backend/internal/storage"
)

// RegisterVoter inserts the voter row and, if entry is non-nil, the audit
// entry in one transaction.
func (s *SQLiteStore) RegisterVoter(ctx context.Context, voter *models.Voter, entry *models.AuditEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO voters (npm, name, region, class_label, password_hash, photo, has_voted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)
	`, voter.NPM, voter.Name, voter.Region, voter.ClassLabel, voter.PasswordHash, voter.Photo, voter.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateVoter
		}
		return fmt.Errorf("failed to insert voter: %w", err)
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

// GetVoter retrieves a voter by NPM.
func (s *SQLiteStore) GetVoter(ctx context.Context, npm string) (*models.Voter, error) {
	voter := &models.Voter{}
	err := s.db.QueryRowContext(ctx, `
		SELECT npm, name, region, class_label, password_hash, photo, has_voted, created_at
		FROM voters
		WHERE npm = ?
	`, npm).Scan(
		&voter.NPM,
		&voter.Name,
		&voter.Region,
		&voter.ClassLabel,
		&voter.PasswordHash,
		&voter.Photo,
		&voter.HasVoted,
		&voter.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Voter not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	return voter, nil
}

// ListVoters returns all voters ordered by NPM, without password hashes or
// photos.
func (s *SQLiteStore) ListVoters(ctx context.Context) ([]models.Voter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT npm, name, region, class_label, has_voted, created_at
		FROM voters
		ORDER BY npm
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	var voters []models.Voter
	for rows.Next() {
		var voter models.Voter
		if err := rows.Scan(
			&voter.NPM,
			&voter.Name,
			&voter.Region,
			&voter.ClassLabel,
			&voter.HasVoted,
			&voter.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, voter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate voters: %w", err)
	}
	return voters, nil
}

// Participation returns turnout counts.
func (s *SQLiteStore) Participation(ctx context.Context) (*models.Participation, error) {
	p := &models.Participation{}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(has_voted), 0) FROM voters
	`).Scan(&p.Total, &p.Voted)
	if err != nil {
		return nil, fmt.Errorf("failed to count participation: %w", err)
	}
	p.NotVoted = p.Total - p.Voted
	return p, nil
}

// isUniqueViolation reports whether err is the driver's primary-key
// uniqueness error for the voters table.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed: voters.npm")
}
